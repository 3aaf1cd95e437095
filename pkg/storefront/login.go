package storefront

import (
	"context"
	"strings"
	"sync"

	"github.com/Skotchmaster/ecommerce_hub/pkg/apiclient"
	"github.com/Skotchmaster/ecommerce_hub/pkg/models"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.Identity, error)
}

// LoginForm submits credentials through the session store and keeps the
// inline error for display.
type LoginForm struct {
	auth Authenticator

	mu         sync.Mutex
	submitting bool
	errMsg     string
}

func NewLoginForm(auth Authenticator) *LoginForm {
	return &LoginForm{auth: auth}
}

// Submit returns the screen to navigate to. On failure it returns ScreenLogin
// and the message is available from Error.
func (f *LoginForm) Submit(ctx context.Context, email, password string) (Screen, error) {
	f.mu.Lock()
	f.submitting = true
	f.errMsg = ""
	f.mu.Unlock()

	id, err := f.auth.Login(ctx, strings.TrimSpace(email), password)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.errMsg = apiclient.Message(err)
		return ScreenLogin, err
	}
	return Home(id), nil
}

func (f *LoginForm) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

func (f *LoginForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}
