package checkout

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopzone/internal/cart"
	"shopzone/internal/models"
)

// Step is the position in the checkout wizard.
type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepReview
	StepConfirmation
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidPromo       = errors.New("invalid promo code")
	ErrIncompleteCheckout = errors.New("shipping and payment must be completed first")
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
)

var (
	freeShippingOver = decimal.NewFromInt(50)
	shippingFlatRate = decimal.NewFromInt(10)
	taxRate          = decimal.NewFromFloat(0.08)
)

// PromoType selects how a promo code changes the order totals.
type PromoType string

const (
	PromoPercentage PromoType = "percentage"
	PromoFixed      PromoType = "fixed"
	PromoShipping   PromoType = "shipping"
)

// Promo is a recognized discount code.
type Promo struct {
	Code        string    `json:"code"`
	Type        PromoType `json:"type"`
	Value       float64   `json:"value"`
	Description string    `json:"description"`
}

var promoCodes = map[string]Promo{
	"SAVE10":    {Code: "SAVE10", Type: PromoPercentage, Value: 10, Description: "10% off your order"},
	"WELCOME20": {Code: "WELCOME20", Type: PromoPercentage, Value: 20, Description: "20% off for new customers"},
	"FREESHIP":  {Code: "FREESHIP", Type: PromoShipping, Value: 0, Description: "Free shipping"},
	"SAVE50":    {Code: "SAVE50", Type: PromoFixed, Value: 50, Description: "$50 off orders over $200"},
}

// ShippingInfo is the shipping form of the first checkout step.
type ShippingInfo struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	ZipCode   string `json:"zipCode" binding:"required"`
}

// Validate applies the field rules beyond simple presence.
func (s ShippingInfo) Validate() error {
	if !emailPattern.MatchString(s.Email) {
		return fmt.Errorf("invalid email address %q", s.Email)
	}
	if !phonePattern.MatchString(s.Phone) || len(s.Phone) < 10 {
		return fmt.Errorf("invalid phone number %q", s.Phone)
	}
	return nil
}

// PaymentInfo is the payment form. Card fields are only required when
// the method is "card".
type PaymentInfo struct {
	Method     string `json:"method" binding:"required"`
	CardNumber string `json:"cardNumber"`
	CVV        string `json:"cvv"`
	Expiry     string `json:"expiry"`
}

// Validate checks the method and, for card payments, the card fields.
// Other methods (paypal, applepay) carry no card data.
func (p PaymentInfo) Validate(now time.Time) error {
	switch p.Method {
	case "card":
	case "paypal", "applepay":
		return nil
	default:
		return fmt.Errorf("unknown payment method %q", p.Method)
	}

	number := strings.ReplaceAll(p.CardNumber, " ", "")
	if len(number) < 13 || len(number) > 19 {
		return errors.New("invalid card number")
	}
	if len(p.CVV) < 3 || len(p.CVV) > 4 {
		return errors.New("invalid CVV")
	}
	return validateExpiry(p.Expiry, now)
}

func validateExpiry(expiry string, now time.Time) error {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return errors.New("invalid expiry date")
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return errors.New("invalid expiry date")
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return errors.New("invalid expiry date")
	}
	if time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Before(now) {
		return errors.New("card is expired")
	}
	return nil
}

// Summary is the order arithmetic shown on every step.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Order is the outcome of a confirmed checkout.
type Order struct {
	ID            string            `json:"id"`
	Items         []models.CartItem `json:"items"`
	Shipping      ShippingInfo      `json:"shipping"`
	PaymentMethod string            `json:"paymentMethod"`
	Summary       Summary           `json:"summary"`
	PlacedAt      time.Time         `json:"placedAt"`
}

// Session walks a cart through the four checkout steps:
// shipping, payment, review, confirmation.
type Session struct {
	mu       sync.Mutex
	cart     *cart.Cart
	step     Step
	shipping *ShippingInfo
	payment  *PaymentInfo
	promo    *Promo
}

func NewSession(c *cart.Cart) *Session {
	return &Session{cart: c, step: StepShipping}
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// SubmitShipping validates and stores the shipping form, advancing to
// the payment step.
func (s *Session) SubmitShipping(info ShippingInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.shipping = &info
	if s.step < StepPayment {
		s.step = StepPayment
	}
	return nil
}

// SubmitPayment validates and stores the payment form, advancing to the
// review step. Shipping must be completed first.
func (s *Session) SubmitPayment(info PaymentInfo) error {
	if err := info.Validate(time.Now().UTC()); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shipping == nil {
		return ErrIncompleteCheckout
	}
	s.payment = &info
	if s.step < StepReview {
		s.step = StepReview
	}
	return nil
}

// ApplyPromo activates a discount code. Codes are case-insensitive.
func (s *Session) ApplyPromo(code string) (Promo, error) {
	promo, ok := promoCodes[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Promo{}, ErrInvalidPromo
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.promo = &promo
	return promo, nil
}

// Summary computes the current order totals: flat $10 shipping waived
// over a $50 subtotal or with a shipping promo, 8% tax, then the promo
// discount.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() Summary {
	subtotal := decimal.NewFromFloat(s.cart.Total())

	shipping := shippingFlatRate
	if subtotal.GreaterThan(freeShippingOver) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(taxRate)

	discount := decimal.Zero
	if s.promo != nil {
		switch s.promo.Type {
		case PromoPercentage:
			discount = subtotal.Mul(decimal.NewFromFloat(s.promo.Value)).Div(decimal.NewFromInt(100))
		case PromoFixed:
			fixed := decimal.NewFromFloat(s.promo.Value)
			if fixed.GreaterThan(subtotal) {
				fixed = subtotal
			}
			discount = fixed
		case PromoShipping:
			shipping = decimal.Zero
		}
	}

	total := subtotal.Add(shipping).Add(tax).Sub(discount)

	return Summary{
		Subtotal: round2(subtotal),
		Shipping: round2(shipping),
		Tax:      round2(tax),
		Discount: round2(discount),
		Total:    round2(total),
	}
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Confirm places the order. It requires both forms submitted and a
// non-empty cart; on success the cart is cleared and the session moves
// to the confirmation step.
func (s *Session) Confirm() (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shipping == nil || s.payment == nil {
		return Order{}, ErrIncompleteCheckout
	}
	items := s.cart.Items()
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	order := Order{
		ID:            uuid.New().String(),
		Items:         items,
		Shipping:      *s.shipping,
		PaymentMethod: s.payment.Method,
		Summary:       s.summaryLocked(),
		PlacedAt:      time.Now().UTC(),
	}

	s.cart.Clear()
	s.step = StepConfirmation
	return order, nil
}
