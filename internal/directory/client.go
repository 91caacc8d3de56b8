package directory

import (
	"context"
	"errors"
	"fmt"
)

// ErrSync indica una falla de red o del servicio remoto de directorio.
var ErrSync = errors.New("directory sync failed")

// Identity es el espejo mínimo de un usuario en el directorio de chat externo.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Client define la interfaz para sincronizar identidades con el directorio.
type Client interface {
	Upsert(ctx context.Context, identity Identity) error
}

type disabledClient struct {
	reason string
}

func NewDisabledClient(reason string) Client {
	return &disabledClient{reason: reason}
}

func (c *disabledClient) Upsert(_ context.Context, _ Identity) error {
	if c.reason == "" {
		return fmt.Errorf("%w: client disabled", ErrSync)
	}
	return fmt.Errorf("%w: %s", ErrSync, c.reason)
}
