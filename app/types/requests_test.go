package types

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newJSONContext(method, target, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestNewIdRequestFromContext(t *testing.T) {
	ctx := newJSONContext("GET", "/subscriptions/12", "")
	ctx.SetParamNames("id")
	ctx.SetParamValues("12")

	parsed, err := NewIdRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.GetId() != 12 {
		t.Fatalf("unexpected id: %d", parsed.GetId())
	}

	ctx.SetParamValues("abc")
	if _, err := NewIdRequestFromContext(ctx); err == nil {
		t.Fatal("expected parse error")
	}
	if err := (&IdRequest{}).Validate(); err == nil {
		t.Fatal("expected invalid id")
	}
}

func TestSignupRequestFlattensRegistration(t *testing.T) {
	ctx := newJSONContext("POST", "/members/signup", `{"full_name":" Ana Souza ","email":" ana@example.com ","password":"s3cret-pass","plan_id":2}`)

	parsed, err := NewSignupRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.GetFullName() != "Ana Souza" || parsed.GetEmail() != "ana@example.com" || parsed.GetPlanId() != 2 {
		t.Fatalf("unexpected parsed request: %+v", parsed)
	}
	if err := parsed.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestRegisterMemberValidate(t *testing.T) {
	req := &RegisterMemberRequest{FullName: "Ana", Email: "not-an-email", Password: "short"}
	err := req.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "email must be a valid email") || !strings.Contains(err.Error(), "password must be at least 8") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestUpdateMemberRequiresAField(t *testing.T) {
	ctx := newJSONContext("PATCH", "/members/4", `{}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues("4")

	parsed, err := NewUpdateMemberRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.GetId() != 4 {
		t.Fatalf("expected id from path, got %d", parsed.GetId())
	}
	if err := parsed.Validate(); err == nil {
		t.Fatal("expected missing fields validation error")
	}
}

func TestCreateBenefitValidate(t *testing.T) {
	req := &CreateBenefitRequest{
		Title:              "Curso Alura",
		Provider:           "Alura",
		DiscountCode:       "ALURA20",
		DiscountPercentage: 20,
		ValidFrom:          "2026-01-01T00:00:00Z",
		ValidUntil:         "soon",
	}
	if err := req.Validate(); err == nil || !strings.Contains(err.Error(), "valid_until must be RFC3339") {
		t.Fatalf("expected valid_until error, got %v", err)
	}

	req.ValidUntil = "2026-12-31T23:59:59Z"
	req.DiscountPercentage = 120
	if err := req.Validate(); err == nil || !strings.Contains(err.Error(), "discount_percentage") {
		t.Fatalf("expected percentage error, got %v", err)
	}

	req.DiscountPercentage = 20
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestCreateEventoValidate(t *testing.T) {
	req := &CreateEventoRequest{Title: "Go Meetup", Location: "SP", EventDate: "2026-05-01T19:00:00Z", HasMaxAttendees: true}
	if err := req.Validate(); err == nil {
		t.Fatal("expected max_attendees error")
	}
	req.MaxAttendees = 50
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestNewPurchaseTicketRequestFromContext(t *testing.T) {
	ctx := newJSONContext("POST", "/eventos/9/tickets", `{"member_id":3,"seat":" A1 "}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues("9")

	parsed, err := NewPurchaseTicketRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.GetEventoId() != 9 || parsed.GetMemberId() != 3 || parsed.GetSeat() != "A1" {
		t.Fatalf("unexpected parsed request: %+v", parsed)
	}
}

func TestCreatePaymentValidate(t *testing.T) {
	ctx := newJSONContext("POST", "/payments", `{"member_id":1,"amount_cents":2990,"method":" PIX "}`)
	parsed, err := NewCreatePaymentRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := parsed.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	parsed.Method = "cash"
	if err := parsed.Validate(); err == nil || !strings.Contains(err.Error(), "method must be one of") {
		t.Fatalf("expected method error, got %v", err)
	}
}

func TestNilGettersAreSafe(t *testing.T) {
	var req *SubscribeRequest
	if req.GetMemberId() != 0 || req.GetPlanId() != 0 {
		t.Fatal("expected zero values from nil request")
	}
}

func TestToSnake(t *testing.T) {
	cases := map[string]string{"Email": "email", "DiscountPercentage": "discount_percentage", "PlanId": "plan_id"}
	for in, want := range cases {
		if got := toSnake(in); got != want {
			t.Fatalf("toSnake(%q) = %q, want %q", in, got, want)
		}
	}
}
