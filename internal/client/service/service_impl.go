package service

import (
	"context"
	"strings"

	"github.com/MathisL971/invoicegen/internal/client/domain"
	"github.com/MathisL971/invoicegen/internal/clock"
	invoicedomain "github.com/MathisL971/invoicegen/internal/invoice/domain"
	"github.com/MathisL971/invoicegen/internal/reference"
	referencedomain "github.com/MathisL971/invoicegen/internal/reference/domain"
	"github.com/MathisL971/invoicegen/internal/userctx"
	"github.com/MathisL971/invoicegen/pkg/db"
	"github.com/MathisL971/invoicegen/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	RefRepo     referencedomain.Repository
	InvoiceRepo invoicedomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	refrepo     referencedomain.Repository
	invoicerepo invoicedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("client.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		refrepo:     p.RefRepo,
		invoicerepo: p.InvoiceRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Client{}, domain.ErrInvalidAccount
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	client := domain.Client{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		Name:      name,
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}

	ref := strings.TrimSpace(req.Reference)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ref == "" {
			seq, err := s.refrepo.Next(ctx, tx, accountID, reference.KindClient)
			if err != nil {
				return err
			}
			client.Reference = reference.Generate(reference.KindClient, seq-1)
		} else {
			existing, err := s.repo.FindByReference(ctx, tx, accountID, ref, 0)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrDuplicateReference
			}
			client.Reference = ref
			if err := s.refrepo.Advance(ctx, tx, accountID, reference.KindClient, reference.Parse(reference.KindClient, ref)); err != nil {
				return err
			}
		}
		return s.repo.Insert(ctx, tx, &client)
	})
	if err != nil {
		// The unique index backs up the in-transaction check.
		if db.IsDuplicateKeyErr(err) {
			return domain.Client{}, domain.ErrDuplicateReference
		}
		return domain.Client{}, err
	}

	return client, nil
}

func (s *Service) List(ctx context.Context, req domain.ListClientRequest) (domain.ListClientResponse, error) {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ListClientResponse{}, domain.ErrInvalidAccount
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, accountID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListClientResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(client *domain.Client) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: client.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	clients := make([]domain.Client, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		clients = append(clients, *item)
	}

	return domain.ListClientResponse{
		PageInfo: *pageInfo,
		Clients:  clients,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Client{}, domain.ErrInvalidAccount
	}

	clientID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Client{}, domain.ErrInvalidID
	}

	client, err := s.repo.FindByID(ctx, s.db, accountID, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	return *client, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateClientRequest) (domain.Client, error) {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Client{}, domain.ErrInvalidAccount
	}

	clientID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Client{}, domain.ErrInvalidID
	}

	client, err := s.repo.FindByID(ctx, s.db, accountID, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	ref := strings.TrimSpace(req.Reference)
	if ref == "" {
		ref = client.Reference
	}

	updated := *client
	updated.Name = name
	updated.Address = strings.TrimSpace(req.Address)
	updated.Reference = ref
	updated.UpdatedAt = s.clock.Now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ref != client.Reference {
			existing, err := s.repo.FindByReference(ctx, tx, accountID, ref, clientID)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrDuplicateReference
			}
			if err := s.refrepo.Advance(ctx, tx, accountID, reference.KindClient, reference.Parse(reference.KindClient, ref)); err != nil {
				return err
			}
		}
		return s.repo.Update(ctx, tx, &updated)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Client{}, domain.ErrDuplicateReference
		}
		return domain.Client{}, err
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	clientID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	client, err := s.repo.FindByID(ctx, s.db, accountID, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.invoicerepo.DeleteByClient(ctx, tx, accountID, clientID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, accountID, clientID)
	})
}
