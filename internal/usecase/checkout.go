package usecase

import (
	"context"
	"math"
	"strconv"

	"github.com/abdelrahman464/blackbox/internal/adapter/payment"
	"github.com/abdelrahman464/blackbox/internal/config"
	"github.com/abdelrahman464/blackbox/internal/domain/model"
	"github.com/abdelrahman464/blackbox/internal/domain/repository"
	"github.com/abdelrahman464/blackbox/internal/observability"
)

// CheckoutUseCase opens hosted payment sessions for catalog services.
type CheckoutUseCase struct {
	services repository.ServiceRepository
	users    repository.UserRepository
	gateway  payment.Gateway
	currency string
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	services repository.ServiceRepository,
	users repository.UserRepository,
	gateway payment.Gateway,
	cfg *config.Config,
) *CheckoutUseCase {
	return &CheckoutUseCase{services: services, users: users, gateway: gateway, currency: cfg.Currency}
}

// CreateSession resolves the service, computes the charged amount and opens a
// provider-hosted session. Nothing is persisted here: the order only becomes
// durable once the provider confirms payment through the webhook.
func (u *CheckoutUseCase) CreateSession(ctx context.Context, principal model.Principal, serviceID int64, origin string) (*payment.Session, error) {
	svc, err := u.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	user, err := u.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	// Effective price rounded up to whole currency units, charged in minor units.
	units := int64(math.Ceil(svc.EffectivePrice()))
	params := payment.SessionParams{
		AmountMinor:       units * 100,
		Currency:          u.currency,
		ProductLabel:      user.Name,
		Quantity:          1,
		CustomerEmail:     user.Email,
		ClientReferenceID: strconv.FormatInt(serviceID, 10),
		SuccessURL:        origin + "/",
		CancelURL:         origin + "/",
	}

	session, err := u.gateway.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, err
	}
	observability.CheckoutSessionsCreated.Inc()
	return session, nil
}
