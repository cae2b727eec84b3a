package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return errors.New(strings.Join(messages, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid url"
	case "hexcolor":
		return field + " must be a hex color"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	case "min", "gte", "gt":
		return fmt.Sprintf("%s must be at least %s", field, minimumOf(fe))
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func minimumOf(fe validator.FieldError) string {
	if fe.Tag() == "gt" {
		return "above " + fe.Param()
	}
	return fe.Param()
}

func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(ctx.Param(name), 10, 64)
}

func requireRFC3339(field, value string) error {
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return fmt.Errorf("%s must be RFC3339", field)
	}
	return nil
}

func NewIdRequestFromContext(ctx echo.Context) (*IdRequest, error) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return nil, err
	}
	return &IdRequest{Id: id}, nil
}

func (r *IdRequest) Validate() error {
	if r.GetId() == 0 {
		return errors.New("invalid id")
	}
	return nil
}

func NewMemberScopedRequestFromContext(ctx echo.Context) (*MemberScopedRequest, error) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return nil, err
	}
	return &MemberScopedRequest{MemberId: id}, nil
}

func (r *MemberScopedRequest) Validate() error {
	if r.GetMemberId() == 0 {
		return errors.New("invalid member id")
	}
	return nil
}

func NewCodeRequestFromContext(ctx echo.Context) (*CodeRequest, error) {
	var body CodeRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Code = strings.TrimSpace(body.Code)
	return &body, nil
}

func (r *CodeRequest) Validate() error {
	return validateStruct(r)
}

func NewListPlanBenefitsRequestFromContext(ctx echo.Context) (*ListPlanBenefitsRequest, error) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return nil, err
	}
	return &ListPlanBenefitsRequest{PlanId: id}, nil
}

func (r *ListPlanBenefitsRequest) Validate() error {
	return validateStruct(r)
}

func NewCreatePlanRequestFromContext(ctx echo.Context) (*CreatePlanRequest, error) {
	var body CreatePlanRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Name = strings.TrimSpace(body.Name)
	body.ColorTheme = strings.TrimSpace(body.ColorTheme)
	return &body, nil
}

func (r *CreatePlanRequest) Validate() error {
	return validateStruct(r)
}

func NewCreateBenefitRequestFromContext(ctx echo.Context) (*CreateBenefitRequest, error) {
	var body CreateBenefitRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Title = strings.TrimSpace(body.Title)
	body.DiscountCode = strings.TrimSpace(body.DiscountCode)
	body.ValidFrom = strings.TrimSpace(body.ValidFrom)
	body.ValidUntil = strings.TrimSpace(body.ValidUntil)
	return &body, nil
}

func (r *CreateBenefitRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if err := requireRFC3339("valid_from", r.GetValidFrom()); err != nil {
		return err
	}
	return requireRFC3339("valid_until", r.GetValidUntil())
}

func NewCreateEventoRequestFromContext(ctx echo.Context) (*CreateEventoRequest, error) {
	var body CreateEventoRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Title = strings.TrimSpace(body.Title)
	body.EventDate = strings.TrimSpace(body.EventDate)
	return &body, nil
}

func (r *CreateEventoRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.GetHasMaxAttendees() && r.GetMaxAttendees() <= 0 {
		return errors.New("max_attendees must be positive")
	}
	return requireRFC3339("event_date", r.GetEventDate())
}

func NewRegisterMemberRequestFromContext(ctx echo.Context) (*RegisterMemberRequest, error) {
	var body RegisterMemberRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.trim()
	return &body, nil
}

func (r *RegisterMemberRequest) trim() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.TechArea = strings.TrimSpace(r.TechArea)
	r.CurrentCompany = strings.TrimSpace(r.CurrentCompany)
}

func (r *RegisterMemberRequest) Validate() error {
	return validateStruct(r)
}

func NewSignupRequestFromContext(ctx echo.Context) (*SignupRequest, error) {
	var body SignupRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.trim()
	return &body, nil
}

func (r *SignupRequest) Validate() error {
	return validateStruct(r)
}

func NewAuthenticateRequestFromContext(ctx echo.Context) (*AuthenticateRequest, error) {
	var body AuthenticateRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Email = strings.TrimSpace(body.Email)
	return &body, nil
}

func (r *AuthenticateRequest) Validate() error {
	return validateStruct(r)
}

func NewUpdateMemberRequestFromContext(ctx echo.Context) (*UpdateMemberRequest, error) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return nil, err
	}

	var body UpdateMemberRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Id = id
	body.FullName = strings.TrimSpace(body.FullName)
	body.Email = strings.TrimSpace(body.Email)
	body.Phone = strings.TrimSpace(body.Phone)
	body.TechArea = strings.TrimSpace(body.TechArea)
	body.CurrentCompany = strings.TrimSpace(body.CurrentCompany)
	return &body, nil
}

func (r *UpdateMemberRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.GetFullName() == "" && r.GetEmail() == "" && r.GetPhone() == "" && r.GetTechArea() == "" && r.GetCurrentCompany() == "" {
		return errors.New("at least one profile field is required")
	}
	return nil
}

func NewSubscribeRequestFromContext(ctx echo.Context) (*SubscribeRequest, error) {
	var body SubscribeRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (r *SubscribeRequest) Validate() error {
	return validateStruct(r)
}

func NewChangePlanRequestFromContext(ctx echo.Context) (*ChangePlanRequest, error) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return nil, err
	}

	var body ChangePlanRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Id = id
	return &body, nil
}

func (r *ChangePlanRequest) Validate() error {
	return validateStruct(r)
}

func NewPurchaseTicketRequestFromContext(ctx echo.Context) (*PurchaseTicketRequest, error) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return nil, err
	}

	var body PurchaseTicketRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.EventoId = id
	body.Seat = strings.TrimSpace(body.Seat)
	return &body, nil
}

func (r *PurchaseTicketRequest) Validate() error {
	return validateStruct(r)
}

func NewRedeemBenefitRequestFromContext(ctx echo.Context) (*RedeemBenefitRequest, error) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return nil, err
	}

	var body RedeemBenefitRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.BenefitId = id
	return &body, nil
}

func (r *RedeemBenefitRequest) Validate() error {
	return validateStruct(r)
}

func NewCreatePaymentRequestFromContext(ctx echo.Context) (*CreatePaymentRequest, error) {
	var body CreatePaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Method = strings.TrimSpace(strings.ToLower(body.Method))
	return &body, nil
}

func (r *CreatePaymentRequest) Validate() error {
	return validateStruct(r)
}
