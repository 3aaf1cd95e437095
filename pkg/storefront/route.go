package storefront

import "github.com/Skotchmaster/ecommerce_hub/pkg/models"

type Screen string

const (
	ScreenLoading Screen = "loading"
	ScreenLogin   Screen = "login"
	ScreenCatalog Screen = "store"
	ScreenAdmin   Screen = "admin/dashboard"
)

type SessionView interface {
	Current() (models.Identity, bool)
	Loading() bool
}

// Home is the landing screen for an identity.
func Home(id models.Identity) Screen {
	if id.IsAdmin() {
		return ScreenAdmin
	}
	return ScreenCatalog
}

// Route resolves which screen may actually be shown when want is requested.
func Route(s SessionView, want Screen) Screen {
	if s.Loading() {
		return ScreenLoading
	}
	id, ok := s.Current()
	if !ok {
		return ScreenLogin
	}
	switch want {
	case ScreenAdmin:
		if !id.IsAdmin() {
			return ScreenCatalog
		}
	case ScreenCatalog:
		if id.IsAdmin() {
			return ScreenAdmin
		}
	default:
		return Home(id)
	}
	return want
}
