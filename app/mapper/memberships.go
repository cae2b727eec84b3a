package mapper

import (
	"time"

	"github.com/vibast-solutions/ms-go-memberships/app/entity"
	"github.com/vibast-solutions/ms-go-memberships/app/service"
	"github.com/vibast-solutions/ms-go-memberships/app/types"
)

func PlanToProto(item *entity.Plan) *types.Plan {
	if item == nil {
		return nil
	}

	out := &types.Plan{
		Id:                item.ID,
		Name:              item.Name,
		Description:       item.Description,
		MonthlyPriceCents: item.MonthlyPriceCents,
		ColorTheme:        item.ColorTheme,
		DisplayOrder:      item.DisplayOrder,
		Active:            item.Active,
		CreatedAt:         formatTime(item.CreatedAt),
	}
	if item.AnnualPriceCents != nil {
		out.HasAnnualPrice = true
		out.AnnualPriceCents = *item.AnnualPriceCents
	}
	return out
}

func PlansToProto(items []*entity.Plan) []*types.Plan {
	return mapAll(items, PlanToProto)
}

func BenefitToProto(item *entity.Benefit) *types.Benefit {
	if item == nil {
		return nil
	}

	out := &types.Benefit{
		Id:                 item.ID,
		Title:              item.Title,
		Description:        item.Description,
		Provider:           item.Provider,
		DiscountCode:       item.DiscountCode,
		DiscountPercentage: item.DiscountPercentage,
		RedeemUrl:          item.RedeemURL,
		PlanIds:            idsOrEmpty(item.PlanIDs),
		UsedQuantity:       item.UsedQuantity,
		ValidFrom:          formatTime(item.ValidFrom),
		ValidUntil:         formatTime(item.ValidUntil),
		Active:             item.Active,
		CreatedAt:          formatTime(item.CreatedAt),
	}
	if item.AvailableQuantity != nil {
		out.HasAvailableQuantity = true
		out.AvailableQuantity = *item.AvailableQuantity
	}
	return out
}

func BenefitsToProto(items []*entity.Benefit) []*types.Benefit {
	return mapAll(items, BenefitToProto)
}

func EventoToProto(item *entity.Evento) *types.Evento {
	if item == nil {
		return nil
	}

	out := &types.Evento{
		Id:                 item.ID,
		Title:              item.Title,
		Description:        item.Description,
		Location:           item.Location,
		Speaker:            item.Speaker,
		EventType:          item.EventType,
		EventDate:          formatTime(item.EventDate),
		TicketsSold:        item.TicketsSold,
		RequiresMembership: item.RequiresMembership,
		AllowedPlanIds:     idsOrEmpty(item.AllowedPlanIDs),
		CreatedAt:          formatTime(item.CreatedAt),
	}
	if item.MaxAttendees != nil {
		out.HasMaxAttendees = true
		out.MaxAttendees = *item.MaxAttendees
	}
	return out
}

func EventosToProto(items []*entity.Evento) []*types.Evento {
	return mapAll(items, EventoToProto)
}

func MemberToProto(item *entity.Member) *types.Member {
	if item == nil {
		return nil
	}

	return &types.Member{
		Id:             item.ID,
		FullName:       item.FullName,
		Email:          item.Email,
		Phone:          item.Phone,
		TechArea:       item.TechArea,
		CurrentCompany: item.CurrentCompany,
		CreatedAt:      formatTime(item.CreatedAt),
		UpdatedAt:      formatTime(item.UpdatedAt),
	}
}

func SubscriptionToProto(item *entity.Subscription) *types.Subscription {
	if item == nil {
		return nil
	}

	return &types.Subscription{
		Id:          item.ID,
		MemberId:    item.MemberID,
		PlanId:      item.PlanID,
		Status:      item.Status,
		StartedAt:   formatTime(item.StartedAt),
		NextBilling: formatTime(item.NextBilling),
		AutoRenew:   item.AutoRenew,
		EndedAt:     formatTimePtr(item.EndedAt),
		UpdatedAt:   formatTime(item.UpdatedAt),
	}
}

func SubscriptionsToProto(items []*entity.Subscription) []*types.Subscription {
	return mapAll(items, SubscriptionToProto)
}

func TicketToProto(item *entity.Ticket) *types.Ticket {
	if item == nil {
		return nil
	}

	return &types.Ticket{
		Id:          item.ID,
		OwnerId:     item.OwnerID,
		EventoId:    item.EventoID,
		Seat:        item.Seat,
		Code:        item.Code,
		PurchasedAt: formatTime(item.PurchasedAt),
		Used:        item.Used,
		UsedAt:      formatTimePtr(item.UsedAt),
	}
}

func TicketsToProto(items []*entity.Ticket) []*types.Ticket {
	return mapAll(items, TicketToProto)
}

func RedemptionToProto(item *entity.BenefitRedemption) *types.Redemption {
	if item == nil {
		return nil
	}

	return &types.Redemption{
		Id:         item.ID,
		MemberId:   item.MemberID,
		BenefitId:  item.BenefitID,
		Code:       item.Code,
		RedeemedAt: formatTime(item.RedeemedAt),
		Used:       item.Used,
		UsedAt:     formatTimePtr(item.UsedAt),
	}
}

func RedemptionsToProto(items []*entity.BenefitRedemption) []*types.Redemption {
	return mapAll(items, RedemptionToProto)
}

func PaymentToProto(item *entity.Payment) *types.Payment {
	if item == nil {
		return nil
	}

	out := &types.Payment{
		Id:            item.ID,
		MemberId:      item.MemberID,
		AmountCents:   item.AmountCents,
		Method:        item.Method,
		Status:        item.Status,
		TransactionId: item.TransactionID,
		ProcessedAt:   formatTimePtr(item.ProcessedAt),
		CreatedAt:     formatTime(item.CreatedAt),
	}
	if item.SubscriptionID != nil {
		out.SubscriptionId = *item.SubscriptionID
	}
	return out
}

func PaymentsToProto(items []*entity.Payment) []*types.Payment {
	return mapAll(items, PaymentToProto)
}

func StatsToProto(item *service.Stats) *types.Stats {
	if item == nil {
		return nil
	}
	return &types.Stats{
		Members:             item.Members,
		ActiveSubscriptions: item.ActiveSubscriptions,
		ActivePlans:         item.ActivePlans,
	}
}

// AvailabilityToProto reports redeemability and the advisory remaining
// quantity of benefit.
func AvailabilityToProto(benefit *entity.Benefit, redeemable bool) *types.AvailabilityResponse {
	out := &types.AvailabilityResponse{BenefitId: benefit.ID, Redeemable: redeemable}
	if remaining := benefit.Remaining(); remaining != nil {
		out.Remaining = *remaining
	} else {
		out.Unlimited = true
	}
	return out
}

func mapAll[E any, P any](items []*E, fn func(*E) *P) []*P {
	result := make([]*P, 0, len(items))
	for _, item := range items {
		result = append(result, fn(item))
	}
	return result
}

func idsOrEmpty(ids []uint64) []uint64 {
	if ids == nil {
		return []uint64{}
	}
	return ids
}

func formatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339)
}

func formatTimePtr(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}
