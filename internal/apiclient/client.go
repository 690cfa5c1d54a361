package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

const HeaderImpersonate = "X-Impersonate-Permissao"

// limite de leitura das respostas do backend
const maxBody = 8 << 20

// Auth são as credenciais de uma chamada: o token do backend e a
// permissão personificada (apenas DEV).
type Auth struct {
	Token       string
	Impersonate string
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) newRequest(
	ctx context.Context,
	auth Auth,
	method string,
	path string,
	query url.Values,
	body io.Reader,
	contentType string,
) (*http.Request, error) {

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), body)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if auth.Token != "" {
		req.Header.Set("Authorization", "Bearer "+auth.Token)
	}
	if auth.Impersonate != "" {
		req.Header.Set(HeaderImpersonate, auth.Impersonate)
	}
	return req, nil
}

// do envia um corpo JSON (quando in != nil) e decodifica a resposta
// em out (quando out != nil).
func (c *Client) do(
	ctx context.Context,
	auth Auth,
	method string,
	path string,
	query url.Values,
	in any,
	out any,
) error {

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, auth, method, path, query, body, "application/json")
	if err != nil {
		return err
	}
	return c.send(req, path, out)
}

// Arquivo é um upload repassado em multipart.
type Arquivo struct {
	Campo       string
	Nome        string
	ContentType string
	Conteudo    []byte
}

func (c *Client) doMultipart(
	ctx context.Context,
	auth Auth,
	path string,
	arquivo Arquivo,
	campos map[string]string,
	out any,
) error {

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range campos {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}

	part, err := createFilePart(w, arquivo)
	if err != nil {
		return err
	}
	if _, err := part.Write(arquivo.Conteudo); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, auth, http.MethodPost, path, nil, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	return c.send(req, path, out)
}

func createFilePart(w *multipart.Writer, a Arquivo) (io.Writer, error) {
	ct := a.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		`form-data; name="`+escapeQuotes(a.Campo)+`"; filename="`+escapeQuotes(a.Nome)+`"`)
	h.Set("Content-Type", ct)
	return w.CreatePart(h)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (c *Client) send(req *http.Request, op string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(op, resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: "Erro no servidor: resposta inválida",
		}
	}
	return nil
}

func pathID(prefix, id string) string {
	return prefix + url.PathEscape(id)
}
