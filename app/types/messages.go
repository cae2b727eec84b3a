package types

type Plan struct {
	Id                uint64 `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	MonthlyPriceCents int64  `json:"monthly_price_cents"`
	HasAnnualPrice    bool   `json:"has_annual_price"`
	AnnualPriceCents  int64  `json:"annual_price_cents,omitempty"`
	ColorTheme        string `json:"color_theme"`
	DisplayOrder      int32  `json:"display_order"`
	Active            bool   `json:"active"`
	CreatedAt         string `json:"created_at"`
}

type Benefit struct {
	Id                   uint64   `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description,omitempty"`
	Provider             string   `json:"provider"`
	DiscountCode         string   `json:"discount_code"`
	DiscountPercentage   int32    `json:"discount_percentage"`
	RedeemUrl            string   `json:"redeem_url,omitempty"`
	PlanIds              []uint64 `json:"plan_ids"`
	HasAvailableQuantity bool     `json:"has_available_quantity"`
	AvailableQuantity    int32    `json:"available_quantity,omitempty"`
	UsedQuantity         int32    `json:"used_quantity"`
	ValidFrom            string   `json:"valid_from"`
	ValidUntil           string   `json:"valid_until"`
	Active               bool     `json:"active"`
	CreatedAt            string   `json:"created_at"`
}

type Evento struct {
	Id                 uint64   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Location           string   `json:"location"`
	Speaker            string   `json:"speaker,omitempty"`
	EventType          string   `json:"event_type"`
	EventDate          string   `json:"event_date"`
	HasMaxAttendees    bool     `json:"has_max_attendees"`
	MaxAttendees       int32    `json:"max_attendees,omitempty"`
	TicketsSold        int32    `json:"tickets_sold"`
	RequiresMembership bool     `json:"requires_membership"`
	AllowedPlanIds     []uint64 `json:"allowed_plan_ids"`
	CreatedAt          string   `json:"created_at"`
}

type Member struct {
	Id             uint64 `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	TechArea       string `json:"tech_area,omitempty"`
	CurrentCompany string `json:"current_company,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type Subscription struct {
	Id          uint64 `json:"id"`
	MemberId    uint64 `json:"member_id"`
	PlanId      uint64 `json:"plan_id"`
	Status      string `json:"status"`
	StartedAt   string `json:"started_at"`
	NextBilling string `json:"next_billing"`
	AutoRenew   bool   `json:"auto_renew"`
	EndedAt     string `json:"ended_at,omitempty"`
	UpdatedAt   string `json:"updated_at"`
}

type Ticket struct {
	Id          uint64 `json:"id"`
	OwnerId     uint64 `json:"owner_id"`
	EventoId    uint64 `json:"evento_id"`
	Seat        string `json:"seat,omitempty"`
	Code        string `json:"code"`
	PurchasedAt string `json:"purchased_at"`
	Used        bool   `json:"used"`
	UsedAt      string `json:"used_at,omitempty"`
}

type Redemption struct {
	Id         uint64 `json:"id"`
	MemberId   uint64 `json:"member_id"`
	BenefitId  uint64 `json:"benefit_id"`
	Code       string `json:"code"`
	RedeemedAt string `json:"redeemed_at"`
	Used       bool   `json:"used"`
	UsedAt     string `json:"used_at,omitempty"`
}

type Payment struct {
	Id             uint64 `json:"id"`
	MemberId       uint64 `json:"member_id"`
	SubscriptionId uint64 `json:"subscription_id,omitempty"`
	AmountCents    int64  `json:"amount_cents"`
	Method         string `json:"method"`
	Status         string `json:"status"`
	TransactionId  string `json:"transaction_id,omitempty"`
	ProcessedAt    string `json:"processed_at,omitempty"`
	CreatedAt      string `json:"created_at"`
}

type Stats struct {
	Members             int64 `json:"members"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
	ActivePlans         int64 `json:"active_plans"`
}

type IdRequest struct {
	Id uint64 `json:"id" validate:"required"`
}

func (x *IdRequest) GetId() uint64 {
	if x != nil {
		return x.Id
	}
	return 0
}

type MemberScopedRequest struct {
	MemberId uint64 `json:"member_id" validate:"required"`
}

func (x *MemberScopedRequest) GetMemberId() uint64 {
	if x != nil {
		return x.MemberId
	}
	return 0
}

type CodeRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

func (x *CodeRequest) GetCode() string {
	if x != nil {
		return x.Code
	}
	return ""
}

type ListPlansRequest struct{}

type ListPlanBenefitsRequest struct {
	PlanId uint64 `json:"plan_id" validate:"required"`
}

func (x *ListPlanBenefitsRequest) GetPlanId() uint64 {
	if x != nil {
		return x.PlanId
	}
	return 0
}

type ListUpcomingEventosRequest struct{}

type GetStatsRequest struct{}

type CreatePlanRequest struct {
	Name              string `json:"name" validate:"required,max=50"`
	Description       string `json:"description"`
	MonthlyPriceCents int64  `json:"monthly_price_cents" validate:"gte=0"`
	HasAnnualPrice    bool   `json:"has_annual_price"`
	AnnualPriceCents  int64  `json:"annual_price_cents" validate:"gte=0"`
	ColorTheme        string `json:"color_theme" validate:"omitempty,hexcolor"`
	DisplayOrder      int32  `json:"display_order"`
}

func (x *CreatePlanRequest) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

func (x *CreatePlanRequest) GetDescription() string {
	if x != nil {
		return x.Description
	}
	return ""
}

func (x *CreatePlanRequest) GetMonthlyPriceCents() int64 {
	if x != nil {
		return x.MonthlyPriceCents
	}
	return 0
}

func (x *CreatePlanRequest) GetHasAnnualPrice() bool {
	if x != nil {
		return x.HasAnnualPrice
	}
	return false
}

func (x *CreatePlanRequest) GetAnnualPriceCents() int64 {
	if x != nil {
		return x.AnnualPriceCents
	}
	return 0
}

func (x *CreatePlanRequest) GetColorTheme() string {
	if x != nil {
		return x.ColorTheme
	}
	return ""
}

func (x *CreatePlanRequest) GetDisplayOrder() int32 {
	if x != nil {
		return x.DisplayOrder
	}
	return 0
}

type CreateBenefitRequest struct {
	Title                string   `json:"title" validate:"required,max=200"`
	Description          string   `json:"description"`
	Provider             string   `json:"provider" validate:"required,max=100"`
	DiscountCode         string   `json:"discount_code" validate:"required,max=50"`
	DiscountPercentage   int32    `json:"discount_percentage" validate:"gte=0,lte=100"`
	RedeemUrl            string   `json:"redeem_url" validate:"omitempty,url"`
	PlanIds              []uint64 `json:"plan_ids" validate:"dive,required"`
	HasAvailableQuantity bool     `json:"has_available_quantity"`
	AvailableQuantity    int32    `json:"available_quantity" validate:"gte=0"`
	ValidFrom            string   `json:"valid_from" validate:"required"`
	ValidUntil           string   `json:"valid_until" validate:"required"`
}

func (x *CreateBenefitRequest) GetTitle() string {
	if x != nil {
		return x.Title
	}
	return ""
}

func (x *CreateBenefitRequest) GetDescription() string {
	if x != nil {
		return x.Description
	}
	return ""
}

func (x *CreateBenefitRequest) GetProvider() string {
	if x != nil {
		return x.Provider
	}
	return ""
}

func (x *CreateBenefitRequest) GetDiscountCode() string {
	if x != nil {
		return x.DiscountCode
	}
	return ""
}

func (x *CreateBenefitRequest) GetDiscountPercentage() int32 {
	if x != nil {
		return x.DiscountPercentage
	}
	return 0
}

func (x *CreateBenefitRequest) GetRedeemUrl() string {
	if x != nil {
		return x.RedeemUrl
	}
	return ""
}

func (x *CreateBenefitRequest) GetPlanIds() []uint64 {
	if x != nil {
		return x.PlanIds
	}
	return nil
}

func (x *CreateBenefitRequest) GetHasAvailableQuantity() bool {
	if x != nil {
		return x.HasAvailableQuantity
	}
	return false
}

func (x *CreateBenefitRequest) GetAvailableQuantity() int32 {
	if x != nil {
		return x.AvailableQuantity
	}
	return 0
}

func (x *CreateBenefitRequest) GetValidFrom() string {
	if x != nil {
		return x.ValidFrom
	}
	return ""
}

func (x *CreateBenefitRequest) GetValidUntil() string {
	if x != nil {
		return x.ValidUntil
	}
	return ""
}

type CreateEventoRequest struct {
	Title              string   `json:"title" validate:"required,max=200"`
	Description        string   `json:"description"`
	Location           string   `json:"location" validate:"required,max=200"`
	Speaker            string   `json:"speaker" validate:"max=100"`
	EventType          string   `json:"event_type" validate:"max=50"`
	EventDate          string   `json:"event_date" validate:"required"`
	HasMaxAttendees    bool     `json:"has_max_attendees"`
	MaxAttendees       int32    `json:"max_attendees" validate:"gte=0"`
	RequiresMembership bool     `json:"requires_membership"`
	AllowedPlanIds     []uint64 `json:"allowed_plan_ids" validate:"dive,required"`
}

func (x *CreateEventoRequest) GetTitle() string {
	if x != nil {
		return x.Title
	}
	return ""
}

func (x *CreateEventoRequest) GetDescription() string {
	if x != nil {
		return x.Description
	}
	return ""
}

func (x *CreateEventoRequest) GetLocation() string {
	if x != nil {
		return x.Location
	}
	return ""
}

func (x *CreateEventoRequest) GetSpeaker() string {
	if x != nil {
		return x.Speaker
	}
	return ""
}

func (x *CreateEventoRequest) GetEventType() string {
	if x != nil {
		return x.EventType
	}
	return ""
}

func (x *CreateEventoRequest) GetEventDate() string {
	if x != nil {
		return x.EventDate
	}
	return ""
}

func (x *CreateEventoRequest) GetHasMaxAttendees() bool {
	if x != nil {
		return x.HasMaxAttendees
	}
	return false
}

func (x *CreateEventoRequest) GetMaxAttendees() int32 {
	if x != nil {
		return x.MaxAttendees
	}
	return 0
}

func (x *CreateEventoRequest) GetRequiresMembership() bool {
	if x != nil {
		return x.RequiresMembership
	}
	return false
}

func (x *CreateEventoRequest) GetAllowedPlanIds() []uint64 {
	if x != nil {
		return x.AllowedPlanIds
	}
	return nil
}

type RegisterMemberRequest struct {
	FullName       string `json:"full_name" validate:"required,max=200"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8,max=128"`
	Phone          string `json:"phone" validate:"max=20"`
	TechArea       string `json:"tech_area" validate:"max=100"`
	CurrentCompany string `json:"current_company" validate:"max=200"`
}

func (x *RegisterMemberRequest) GetFullName() string {
	if x != nil {
		return x.FullName
	}
	return ""
}

func (x *RegisterMemberRequest) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

func (x *RegisterMemberRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

func (x *RegisterMemberRequest) GetPhone() string {
	if x != nil {
		return x.Phone
	}
	return ""
}

func (x *RegisterMemberRequest) GetTechArea() string {
	if x != nil {
		return x.TechArea
	}
	return ""
}

func (x *RegisterMemberRequest) GetCurrentCompany() string {
	if x != nil {
		return x.CurrentCompany
	}
	return ""
}

type SignupRequest struct {
	RegisterMemberRequest
	PlanId uint64 `json:"plan_id" validate:"required"`
}

func (x *SignupRequest) GetPlanId() uint64 {
	if x != nil {
		return x.PlanId
	}
	return 0
}

type AuthenticateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (x *AuthenticateRequest) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

func (x *AuthenticateRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

type UpdateMemberRequest struct {
	Id             uint64 `json:"id" validate:"required"`
	FullName       string `json:"full_name" validate:"max=200"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"max=20"`
	TechArea       string `json:"tech_area" validate:"max=100"`
	CurrentCompany string `json:"current_company" validate:"max=200"`
}

func (x *UpdateMemberRequest) GetId() uint64 {
	if x != nil {
		return x.Id
	}
	return 0
}

func (x *UpdateMemberRequest) GetFullName() string {
	if x != nil {
		return x.FullName
	}
	return ""
}

func (x *UpdateMemberRequest) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

func (x *UpdateMemberRequest) GetPhone() string {
	if x != nil {
		return x.Phone
	}
	return ""
}

func (x *UpdateMemberRequest) GetTechArea() string {
	if x != nil {
		return x.TechArea
	}
	return ""
}

func (x *UpdateMemberRequest) GetCurrentCompany() string {
	if x != nil {
		return x.CurrentCompany
	}
	return ""
}

type SubscribeRequest struct {
	MemberId uint64 `json:"member_id" validate:"required"`
	PlanId   uint64 `json:"plan_id" validate:"required"`
}

func (x *SubscribeRequest) GetMemberId() uint64 {
	if x != nil {
		return x.MemberId
	}
	return 0
}

func (x *SubscribeRequest) GetPlanId() uint64 {
	if x != nil {
		return x.PlanId
	}
	return 0
}

type ChangePlanRequest struct {
	Id     uint64 `json:"id" validate:"required"`
	PlanId uint64 `json:"plan_id" validate:"required"`
}

func (x *ChangePlanRequest) GetId() uint64 {
	if x != nil {
		return x.Id
	}
	return 0
}

func (x *ChangePlanRequest) GetPlanId() uint64 {
	if x != nil {
		return x.PlanId
	}
	return 0
}

type PurchaseTicketRequest struct {
	EventoId uint64 `json:"evento_id" validate:"required"`
	MemberId uint64 `json:"member_id" validate:"required"`
	Seat     string `json:"seat" validate:"max=10"`
}

func (x *PurchaseTicketRequest) GetEventoId() uint64 {
	if x != nil {
		return x.EventoId
	}
	return 0
}

func (x *PurchaseTicketRequest) GetMemberId() uint64 {
	if x != nil {
		return x.MemberId
	}
	return 0
}

func (x *PurchaseTicketRequest) GetSeat() string {
	if x != nil {
		return x.Seat
	}
	return ""
}

type RedeemBenefitRequest struct {
	BenefitId uint64 `json:"benefit_id" validate:"required"`
	MemberId  uint64 `json:"member_id" validate:"required"`
}

func (x *RedeemBenefitRequest) GetBenefitId() uint64 {
	if x != nil {
		return x.BenefitId
	}
	return 0
}

func (x *RedeemBenefitRequest) GetMemberId() uint64 {
	if x != nil {
		return x.MemberId
	}
	return 0
}

type CreatePaymentRequest struct {
	MemberId       uint64 `json:"member_id" validate:"required"`
	SubscriptionId uint64 `json:"subscription_id"`
	AmountCents    int64  `json:"amount_cents" validate:"gt=0"`
	Method         string `json:"method" validate:"required,oneof=credit_card debit_card pix bank_transfer"`
}

func (x *CreatePaymentRequest) GetMemberId() uint64 {
	if x != nil {
		return x.MemberId
	}
	return 0
}

func (x *CreatePaymentRequest) GetSubscriptionId() uint64 {
	if x != nil {
		return x.SubscriptionId
	}
	return 0
}

func (x *CreatePaymentRequest) GetAmountCents() int64 {
	if x != nil {
		return x.AmountCents
	}
	return 0
}

func (x *CreatePaymentRequest) GetMethod() string {
	if x != nil {
		return x.Method
	}
	return ""
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ListPlansResponse struct {
	Plans []*Plan `json:"plans"`
}

type PlanResponse struct {
	Plan *Plan `json:"plan"`
}

type ListBenefitsResponse struct {
	Benefits []*Benefit `json:"benefits"`
}

type BenefitResponse struct {
	Benefit *Benefit `json:"benefit"`
}

type ListEventosResponse struct {
	Eventos []*Evento `json:"eventos"`
}

type EventoResponse struct {
	Evento *Evento `json:"evento"`
}

type StatsResponse struct {
	Stats *Stats `json:"stats"`
}

type MemberResponse struct {
	Member *Member `json:"member"`
}

type SignupResponse struct {
	Member       *Member       `json:"member"`
	Subscription *Subscription `json:"subscription"`
}

type SubscriptionResponse struct {
	Subscription *Subscription `json:"subscription"`
}

type ListSubscriptionsResponse struct {
	Subscriptions []*Subscription `json:"subscriptions"`
}

type TicketResponse struct {
	Ticket *Ticket `json:"ticket"`
}

type ListTicketsResponse struct {
	Tickets []*Ticket `json:"tickets"`
}

type ValidateTicketResponse struct {
	Valid  bool    `json:"valid"`
	Ticket *Ticket `json:"ticket,omitempty"`
}

type AvailabilityResponse struct {
	BenefitId  uint64 `json:"benefit_id"`
	Redeemable bool   `json:"redeemable"`
	Unlimited  bool   `json:"unlimited"`
	Remaining  int32  `json:"remaining"`
}

type RedeemBenefitResponse struct {
	Redemption *Redemption `json:"redemption"`
	Benefit    *Benefit    `json:"benefit"`
}

type RedemptionResponse struct {
	Redemption *Redemption `json:"redemption"`
}

type ListRedemptionsResponse struct {
	Redemptions []*Redemption `json:"redemptions"`
}

type ConsumeRedemptionResponse struct {
	Consumed   bool        `json:"consumed"`
	Redemption *Redemption `json:"redemption,omitempty"`
}

type PaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}
