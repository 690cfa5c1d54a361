package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendamento-smul/internal/models"
)

type Event struct {
	UsuarioID string
	Login     string
	Permissao string
	Action    string
	Entity    string
	EntityID  string
	RequestID string
	Metadata  any
}

// Logger grava no postgres quando DATABASE_URL existe; sem banco,
// o evento vai só para o log.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	if l.db == nil {
		log.Printf("[AUDIT] %s %s/%s por %s (%s) req=%s %s",
			ev.Action, ev.Entity, ev.EntityID, ev.Login, ev.Permissao, ev.RequestID, metaJSON)
		return nil
	}

	row := models.AuditLog{
		UsuarioID: ev.UsuarioID,
		Login:     ev.Login,
		Permissao: ev.Permissao,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		RequestID: ev.RequestID,
	}

	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return classify(err)
	}
	return nil
}

// classify acrescenta o código SQLSTATE quando a falha veio do postgres.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &StoreError{Code: pgErr.Code, Err: err}
	}
	return err
}

type StoreError struct {
	Code string
	Err  error
}

func (e *StoreError) Error() string {
	return "audit store (" + e.Code + "): " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
