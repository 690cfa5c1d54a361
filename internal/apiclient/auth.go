package apiclient

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Login string `json:"login"`
	Senha string `json:"senha"`
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login troca credenciais de rede pelos tokens do backend.
func (c *Client) Login(ctx context.Context, login, senha string) (*Tokens, error) {
	var out Tokens
	if err := c.do(ctx, Auth{}, http.MethodPost, "login", nil, loginRequest{Login: login, Senha: senha}, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &APIError{Op: "login", Status: http.StatusBadGateway, Message: "Resposta de login sem token."}
	}
	return &out, nil
}
