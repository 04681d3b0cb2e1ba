package payments

import (
	"context"

	pkgstripe "github.com/framehouse-studio/booking-backend/pkg/stripe"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"
)

//go:generate mockgen -source=provider.go -destination=provider_mock.go -package=payments

// IntentProvider creates payment intents with the payment processor.
type IntentProvider interface {
	CreatePaymentIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type stripeIntentProvider struct{}

// NewStripeProvider returns the Stripe-backed provider. The client must have
// been constructed first so the API key is configured.
func NewStripeProvider(api *pkgstripe.Client) IntentProvider {
	if api == nil {
		return nil
	}
	return &stripeIntentProvider{}
}

func (p *stripeIntentProvider) CreatePaymentIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if params != nil {
		params.Context = ctx
	}
	return paymentintent.New(params)
}
