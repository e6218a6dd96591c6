package state

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dmitrijs2005/bothoster/internal/client/identity"
	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/client/services"
	"github.com/dmitrijs2005/bothoster/internal/common"
	"github.com/dmitrijs2005/bothoster/internal/logging"
)

type View string

const (
	ViewLogin     View = "login"
	ViewSignup    View = "signup"
	ViewDashboard View = "dashboard"
)

type Modal string

const (
	ModalNone   Modal = "none"
	ModalCreate Modal = "create"
	ModalEdit   Modal = "edit"
)

// Form holds the create/edit modal fields.
type Form struct {
	Name   string
	Token  string
	Script string
}

func defaultForm() Form {
	return Form{Script: models.DefaultScript}
}

type Container struct {
	auth services.AuthService
	bots services.BotService
	log  logging.Logger
	now  func() time.Time

	view  View
	modal Modal

	user     *models.User
	email    string
	password []byte

	loading   bool
	errMsg    string
	okMsg     string
	okSetAt   time.Time
	list      []models.Bot
	editingID string
	form      Form

	unsubscribe func()
}

func New(auth services.AuthService, bots services.BotService, log logging.Logger) *Container {
	c := &Container{
		auth:  auth,
		bots:  bots,
		log:   log.With("component", "state"),
		now:   time.Now,
		view:  ViewLogin,
		modal: ModalNone,
		list:  []models.Bot{},
		form:  defaultForm(),
	}
	c.unsubscribe = auth.Subscribe(c.onSession)
	return c
}

// Close detaches the container from session notifications.
func (c *Container) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

func (c *Container) onSession(u *models.User) {
	if u == nil && c.view == ViewDashboard {
		c.clearLocal()
	}
}

// ---- accessors ----

func (c *Container) View() View         { return c.view }
func (c *Container) Modal() Modal       { return c.modal }
func (c *Container) Loading() bool      { return c.loading }
func (c *Container) Email() string      { return c.email }
func (c *Container) Form() Form         { return c.form }
func (c *Container) BotCount() int      { return len(c.list) }
func (c *Container) Bots() []models.Bot { return slices.Clone(c.list) }

func (c *Container) User() *models.User {
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// ErrorMessage returns the error banner, or "".
func (c *Container) ErrorMessage() string { return c.errMsg }

// SuccessMessage returns the success banner until SuccessTTL has passed.
func (c *Container) SuccessMessage() string {
	if c.okMsg == "" || c.now().Sub(c.okSetAt) >= SuccessTTL {
		return ""
	}
	return c.okMsg
}

// CanCreate reports whether the quota leaves room for another bot.
func (c *Container) CanCreate() bool {
	return len(c.list) < models.MaxBotsPerAccount
}

// Editing returns the bot selected for editing, if any.
func (c *Container) Editing() *models.Bot {
	if c.modal != ModalEdit {
		return nil
	}
	i := models.FindBot(c.list, c.editingID)
	if i < 0 {
		return nil
	}
	b := c.list[i]
	return &b
}

// Bot looks a bot up by id.
func (c *Container) Bot(id string) (models.Bot, bool) {
	i := models.FindBot(c.list, id)
	if i < 0 {
		return models.Bot{}, false
	}
	return c.list[i], true
}

// ---- form fields ----

func (c *Container) SetEmail(email string) { c.email = email }

// SetPassword takes ownership of p. The previous value is wiped.
func (c *Container) SetPassword(p []byte) {
	common.WipeByteArray(c.password)
	c.password = p
}

func (c *Container) SetName(name string)     { c.form.Name = name }
func (c *Container) SetToken(token string)   { c.form.Token = token }
func (c *Container) SetScript(script string) { c.form.Script = script }

// ---- auth views ----

func (c *Container) ShowSignup() {
	if c.view == ViewDashboard {
		return
	}
	c.view = ViewSignup
	c.errMsg = ""
}

func (c *Container) ShowLogin() {
	if c.view == ViewDashboard {
		return
	}
	c.view = ViewLogin
	c.errMsg = ""
}

func (c *Container) Login(ctx context.Context) error {
	return c.authenticate(ctx, c.auth.SignIn)
}

func (c *Container) Signup(ctx context.Context) error {
	return c.authenticate(ctx, c.auth.SignUp)
}

type authFn func(ctx context.Context, email string, password []byte) (*models.User, error)

func (c *Container) authenticate(ctx context.Context, fn authFn) error {
	c.loading = true
	defer func() { c.loading = false }()

	pw := c.password
	c.password = nil
	defer common.WipeByteArray(pw)

	c.errMsg = ""
	user, err := fn(ctx, c.email, pw)
	if err != nil {
		c.errMsg = identity.Message(identity.CodeOf(err))
		return err
	}

	c.user = user
	if user.Email != "" {
		c.email = user.Email
	}
	c.view = ViewDashboard
	c.modal = ModalNone

	list, err := c.bots.Load(ctx)
	if err != nil {
		c.log.Error(ctx, "load bots", "error", err)
	}
	if list == nil {
		list = []models.Bot{}
	}
	c.list = list
	return nil
}

// Logout ends the session. The local mirror is left as is.
func (c *Container) Logout(ctx context.Context) {
	if err := c.auth.SignOut(ctx); err != nil {
		c.log.Warn(ctx, "sign out failed", "error", err)
	}
	c.clearLocal()
}

func (c *Container) clearLocal() {
	c.user = nil
	c.email = ""
	common.WipeByteArray(c.password)
	c.password = nil
	c.list = []models.Bot{}
	c.modal = ModalNone
	c.editingID = ""
	c.form = defaultForm()
	c.errMsg = ""
	c.okMsg = ""
	c.view = ViewLogin
}

// ---- modals ----

// OpenCreate opens the create modal. It returns false when the action is
// disabled: not on the dashboard, or the quota is used up.
func (c *Container) OpenCreate() bool {
	if c.view != ViewDashboard || !c.CanCreate() {
		return false
	}
	c.form = defaultForm()
	c.editingID = ""
	c.modal = ModalCreate
	return true
}

func (c *Container) OpenEdit(botID string) bool {
	if c.view != ViewDashboard {
		return false
	}
	b, ok := c.Bot(botID)
	if !ok {
		c.errMsg = MsgBotNotFound
		return false
	}
	c.editingID = b.ID
	c.form = Form{Name: b.Name, Script: b.Script}
	c.modal = ModalEdit
	return true
}

func (c *Container) CancelModal() {
	c.modal = ModalNone
	c.editingID = ""
}

// ---- mutations ----

func (c *Container) SubmitCreate(ctx context.Context) error {
	if c.view != ViewDashboard {
		return ErrFormClosed
	}
	if c.modal != ModalCreate {
		if !c.CanCreate() {
			c.setError(MsgQuotaReached)
			return services.ErrQuotaReached
		}
		return ErrFormClosed
	}

	c.loading = true
	defer func() { c.loading = false }()

	next, _, err := c.bots.Create(ctx, c.list, models.CreateBotInput{
		Name:   c.form.Name,
		Token:  c.form.Token,
		Script: c.form.Script,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenRequired):
			c.setError(MsgTokenRequired)
		case errors.Is(err, services.ErrQuotaReached):
			c.setError(MsgQuotaReached)
		default:
			c.setError(MsgCreateFailed)
		}
		return err
	}

	c.list = next
	c.form = defaultForm()
	c.modal = ModalNone
	c.setSuccess(MsgCreated)
	return nil
}

func (c *Container) SubmitUpdate(ctx context.Context) error {
	if c.modal != ModalEdit || c.editingID == "" {
		c.setError(MsgBotNotFound)
		return services.ErrBotNotFound
	}

	c.loading = true
	defer func() { c.loading = false }()

	next, err := c.bots.Update(ctx, c.list, c.editingID, c.form.Script)
	if err != nil {
		if errors.Is(err, services.ErrBotNotFound) {
			c.setError(MsgBotNotFound)
		} else {
			c.setError(MsgUpdateFailed)
		}
		return err
	}

	c.list = next
	c.modal = ModalNone
	c.editingID = ""
	c.setSuccess(MsgUpdated)
	return nil
}

// Delete removes botID after confirm() agrees. A declined confirmation is
// a no-op.
func (c *Container) Delete(ctx context.Context, botID string, confirm func() bool) error {
	if !confirm() {
		return nil
	}

	c.loading = true
	defer func() { c.loading = false }()

	next, err := c.bots.Delete(ctx, c.list, botID)
	if err != nil {
		if errors.Is(err, services.ErrBotNotFound) {
			c.setError(MsgBotNotFound)
		} else {
			c.setError(MsgDeleteFailed)
		}
		return err
	}

	c.list = next
	if c.editingID == botID {
		c.CancelModal()
	}
	c.setSuccess(MsgDeleted)
	return nil
}

func (c *Container) DismissError() { c.errMsg = "" }

func (c *Container) setError(msg string) {
	c.errMsg = msg
}

func (c *Container) setSuccess(msg string) {
	c.errMsg = ""
	c.okMsg = msg
	c.okSetAt = c.now()
}
