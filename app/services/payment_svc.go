package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/de-scientist/brandson/app/models"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	PaymentStatusPending = "pending"

	midtransNameLimit = 50
)

// PaymentIntent asks a gateway to collect Amount for an order.
type PaymentIntent struct {
	Reference string
	Amount    decimal.Decimal
	Method    string
	Order     models.OrderSummary
}

type PaymentResult struct {
	Provider    string `json:"provider"`
	Status      string `json:"status"`
	Token       string `json:"token,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, intent PaymentIntent) (*PaymentResult, error)
}

// SnapClient is the part of the Midtrans Snap client the gateway uses.
type SnapClient interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

type MidtransGateway struct {
	client  SnapClient
	baseURL string
	logger  *zap.Logger
}

func NewMidtransGateway(client SnapClient, baseURL string, logger *zap.Logger) *MidtransGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MidtransGateway{client: client, baseURL: baseURL, logger: logger}
}

// CreatePaymentIntent opens a Snap transaction. Cash on pickup never reaches
// Midtrans and is returned as a pending manual payment.
func (g *MidtransGateway) CreatePaymentIntent(ctx context.Context, intent PaymentIntent) (*PaymentResult, error) {
	if !models.IsSupportedPaymentMethod(intent.Method) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPaymentMethod, intent.Method)
	}
	if intent.Method == models.PaymentMethodCashOnPickup {
		return &PaymentResult{Provider: "manual", Status: PaymentStatusPending}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := g.buildSnapRequest(intent)
	resp, merr := g.client.CreateTransaction(req)
	if merr != nil {
		g.logger.Error("midtrans create transaction failed",
			zap.String("reference", intent.Reference),
			zap.Int("status_code", merr.StatusCode),
			zap.String("message", merr.Message))
		return nil, fmt.Errorf("%w: %s", ErrPaymentFailed, merr.Message)
	}
	if resp == nil || resp.Token == "" || resp.RedirectURL == "" {
		g.logger.Error("midtrans returned an incomplete response", zap.String("reference", intent.Reference))
		return nil, fmt.Errorf("%w: missing token or redirect url", ErrPaymentFailed)
	}

	g.logger.Info("midtrans transaction created",
		zap.String("reference", intent.Reference),
		zap.Int64("gross_amount", req.TransactionDetails.GrossAmt))
	return &PaymentResult{
		Provider:    "midtrans",
		Status:      PaymentStatusPending,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// buildSnapRequest converts the order to whole shillings. Midtrans requires
// the item prices to add up to the gross amount, so any rounding gap goes on
// an ADJUSTMENT line.
func (g *MidtransGateway) buildSnapRequest(intent PaymentIntent) *snap.Request {
	order := intent.Order
	var items []midtrans.ItemDetails

	for _, item := range order.Items {
		items = append(items, midtrans.ItemDetails{
			ID:    truncate(item.ID, midtransNameLimit),
			Name:  truncate(item.Product.Name+" - "+item.Variant.Name, midtransNameLimit),
			Price: item.Variant.Price.Round(0).IntPart(),
			Qty:   int32(item.Quantity),
		})
	}

	if order.Shipping.IsPositive() {
		items = append(items, midtrans.ItemDetails{
			ID:    "SHIPPING_FEE",
			Name:  truncate("Shipping ("+order.ShippingInfo.Name+")", midtransNameLimit),
			Price: order.Shipping.Round(0).IntPart(),
			Qty:   1,
		})
	}

	if order.Tax.IsPositive() {
		items = append(items, midtrans.ItemDetails{
			ID:    "VAT",
			Name:  "VAT 16%",
			Price: order.Tax.Round(0).IntPart(),
			Qty:   1,
		})
	}

	itemsTotal := decimal.Zero
	for _, item := range items {
		itemsTotal = itemsTotal.Add(decimal.NewFromInt(item.Price).Mul(decimal.NewFromInt32(item.Qty)))
	}
	gross := intent.Amount.Round(0)
	if difference := gross.Sub(itemsTotal); !difference.IsZero() {
		items = append(items, midtrans.ItemDetails{
			ID:    "ADJUSTMENT",
			Name:  "Rounding adjustment",
			Price: difference.IntPart(),
			Qty:   1,
		})
	}

	customer := order.CustomerInfo
	address := &midtrans.CustomerAddress{
		FName:       customer.FirstName,
		LName:       customer.LastName,
		Phone:       customer.Phone,
		Address:     customer.Address,
		City:        customer.City,
		Postcode:    customer.PostalCode,
		CountryCode: "KEN",
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  intent.Reference,
			GrossAmt: gross.IntPart(),
		},
		Items: &items,
		CustomerDetail: &midtrans.CustomerDetails{
			FName:    customer.FirstName,
			LName:    customer.LastName,
			Email:    customer.Email,
			Phone:    customer.Phone,
			BillAddr: address,
			ShipAddr: address,
		},
		EnabledPayments: enabledPayments(intent.Method),
	}
	if g.baseURL != "" {
		req.Callbacks = &snap.Callbacks{
			Finish: g.baseURL + "/checkout/finish?reference=" + url.QueryEscape(intent.Reference),
		}
	}
	return req
}

func enabledPayments(method string) []snap.SnapPaymentType {
	switch method {
	case models.PaymentMethodCard:
		return []snap.SnapPaymentType{snap.PaymentTypeCreditCard}
	case models.PaymentMethodBankTransfer:
		return []snap.SnapPaymentType{snap.PaymentTypeBankTransfer}
	default:
		return snap.AllSnapPaymentType
	}
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// NoopGateway accepts every supported method and records nothing. It is used
// when no Midtrans key is configured.
type NoopGateway struct{}

func (NoopGateway) CreatePaymentIntent(_ context.Context, intent PaymentIntent) (*PaymentResult, error) {
	if !models.IsSupportedPaymentMethod(intent.Method) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPaymentMethod, intent.Method)
	}
	return &PaymentResult{Provider: "manual", Status: PaymentStatusPending}, nil
}
