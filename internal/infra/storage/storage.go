package storage

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Archiver guarda uma cópia das planilhas importadas.
type Archiver interface {
	Archive(ctx context.Context, name, contentType string, content []byte) (string, error)
}

// Nop é usado quando S3_BUCKET não está configurado.
type Nop struct{}

func (Nop) Archive(_ context.Context, name, _ string, _ []byte) (string, error) {
	log.Printf("[STORAGE] arquivamento desativado, %s não foi guardado", name)
	return "", nil
}

// ObjectKey monta planilhas/aaaa/mm/<uuid>-<nome>.
func ObjectKey(now time.Time, name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." || name == "/" {
		name = "planilha"
	}

	return fmt.Sprintf("planilhas/%04d/%02d/%s-%s", now.Year(), int(now.Month()), uuid.NewString(), name)
}
