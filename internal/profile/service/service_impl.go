package service

import (
	"context"
	"strings"

	"github.com/MathisL971/invoicegen/internal/clock"
	"github.com/MathisL971/invoicegen/internal/profile/domain"
	"github.com/MathisL971/invoicegen/internal/userctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("profile.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Profile, error) {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Profile{}, domain.ErrInvalidAccount
	}

	profile, err := s.repo.FindByAccount(ctx, s.db, accountID)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile != nil {
		return *profile, nil
	}

	// First read for this account: create the empty row.
	now := s.clock.Now()
	created := domain.Profile{
		AccountID:   accountID,
		BankingInfo: datatypes.NewJSONType(domain.BankingInfo{}),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, &created); err != nil {
		return domain.Profile{}, err
	}
	s.log.Info("profile created", zap.String("account_id", accountID.String()))
	return created, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProfileRequest) (domain.Profile, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.Profile{}, err
	}

	current.CompanyName = strings.TrimSpace(req.CompanyName)
	current.Address = strings.TrimSpace(req.Address)
	current.Phone = strings.TrimSpace(req.Phone)
	current.Email = strings.TrimSpace(req.Email)
	current.BankingInfo = datatypes.NewJSONType(req.BankingInfo)
	current.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, &current); err != nil {
		return domain.Profile{}, err
	}
	return current, nil
}
