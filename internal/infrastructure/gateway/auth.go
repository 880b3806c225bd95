package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/doneduardo/catalogo-core/internal/domain"
)

type credenciales struct {
	Usuario string `json:"usuario"`
	Clave   string `json:"clave"`
}

type respuestaLogin struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// IniciarSesion autentica contra el gateway y devuelve el access token emitido.
// No guarda el token en el cliente; eso lo decide la sesión que lo invoca.
func (c *Cliente) IniciarSesion(ctx context.Context, usuario, clave string) (string, error) {
	cuerpo, err := c.postJSON(ctx, "/auth/login", credenciales{Usuario: usuario, Clave: clave})
	if err != nil {
		// Un 401 en el login significa credenciales malas, no sesión ausente.
		if errors.Is(err, domain.ErrNoAutenticado) {
			return "", domain.ErrCredencialesInvalidas
		}
		return "", err
	}
	var r respuestaLogin
	if err := json.Unmarshal(cuerpo, &r); err != nil {
		return "", fmt.Errorf("%w: login: %v", domain.ErrRespuestaInvalida, err)
	}
	if r.AccessToken == "" {
		return "", fmt.Errorf("%w: login sin access_token", domain.ErrRespuestaInvalida)
	}
	return r.AccessToken, nil
}
