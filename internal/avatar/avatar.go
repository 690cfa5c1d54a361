package avatar

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	stddraw "image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	xwebp "golang.org/x/image/webp"
)

const (
	// lado da miniatura exibida no menu lateral
	Size = 64

	maxSource = 2 << 20
)

var ErrSemAvatar = errors.New("avatar: usuário sem imagem")

// Load obtém os bytes da imagem de perfil. O backend envia ora uma
// data URL, ora um endereço http(s).
func Load(ctx context.Context, client *http.Client, src string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrSemAvatar
	}

	if strings.HasPrefix(src, "data:") {
		return parseDataURL(src)
	}

	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return nil, fmt.Errorf("avatar: origem não suportada")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("avatar: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxSource))
}

func parseDataURL(src string) ([]byte, error) {
	i := strings.Index(src, ",")
	if i < 0 || !strings.Contains(src[:i], ";base64") {
		return nil, fmt.Errorf("avatar: data URL inválida")
	}
	return base64.StdEncoding.DecodeString(src[i+1:])
}

func decode(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err == nil {
		return img, nil
	}
	if decoded, webpErr := xwebp.Decode(bytes.NewReader(raw)); webpErr == nil {
		return decoded, nil
	}
	return nil, err
}

// Thumbnail recorta o centro em quadrado, reduz para size x size e
// devolve em webp.
func Thumbnail(raw []byte, size int) ([]byte, error) {
	src, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("avatar: imagem ilegível: %w", err)
	}

	b := src.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	if side <= 0 {
		return nil, fmt.Errorf("avatar: imagem vazia")
	}

	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	square := image.NewNRGBA(image.Rect(0, 0, side, side))
	stddraw.Draw(square, square.Bounds(), src, image.Pt(x0, y0), stddraw.Src)

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), square, square.Bounds(), stddraw.Over, nil)

	var out bytes.Buffer
	if err := webp.Encode(&out, dst, &webp.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("avatar: encode: %w", err)
	}
	return out.Bytes(), nil
}
