package domain

import (
	"context"
	"errors"

	"github.com/MathisL971/invoicegen/pkg/db/pagination"
)

type CreateClientRequest struct {
	Reference string `json:"reference"`
	Name      string `json:"name"`
	Address   string `json:"address"`
}

type UpdateClientRequest struct {
	Reference string `json:"reference"`
	Name      string `json:"name"`
	Address   string `json:"address"`
}

type ListClientRequest struct {
	PageToken string
	PageSize  int
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	List(ctx context.Context, req ListClientRequest) (ListClientResponse, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (Client, error)
	// Delete removes the client and cascades to its invoices and their items.
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidAccount     = errors.New("invalid_account")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidName        = errors.New("invalid_name")
	ErrDuplicateReference = errors.New("duplicate_reference")
	ErrNotFound           = errors.New("not_found")
)
