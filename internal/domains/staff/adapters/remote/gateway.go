// Package remote adapts the fulfillment client to the staff gateway port.
package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/orderdesk/orderdesk/internal/clients/http/fulfillment"
	"github.com/orderdesk/orderdesk/internal/domains/staff/domain"
	"github.com/orderdesk/orderdesk/internal/domains/staff/ports"
	"github.com/orderdesk/orderdesk/internal/shared/identity"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway maps wire DTOs to directory members and classifies failures.
type Gateway struct {
	client *fulfillment.Client
}

// NewGateway wraps the fulfillment client.
func NewGateway(client *fulfillment.Client) *Gateway {
	return &Gateway{client: client}
}

// ListMembers fetches and parses the remote directory.
func (g *Gateway) ListMembers(ctx context.Context) ([]domain.Member, error) {
	dtos, err := g.client.ListStaff(ctx)
	if err != nil {
		return nil, classify(err)
	}
	members := make([]domain.Member, 0, len(dtos))
	for _, dto := range dtos {
		member, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}

// CreateMember adds a member remotely.
func (g *Gateway) CreateMember(ctx context.Context, draft domain.Draft) (domain.Member, error) {
	dto, err := g.client.CreateStaff(ctx, toDraftDTO(draft))
	if err != nil {
		return domain.Member{}, classify(err)
	}
	return toDomain(dto)
}

// UpdateMember replaces a member remotely.
func (g *Gateway) UpdateMember(ctx context.Context, id string, draft domain.Draft) (domain.Member, error) {
	dto, err := g.client.UpdateStaff(ctx, id, toDraftDTO(draft))
	if err != nil {
		return domain.Member{}, classify(err)
	}
	return toDomain(dto)
}

// DeleteMember removes a member remotely.
func (g *Gateway) DeleteMember(ctx context.Context, id string) error {
	if err := g.client.DeleteStaff(ctx, id); err != nil {
		return classify(err)
	}
	return nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, fulfillment.ErrNotFound):
		return fmt.Errorf("%w: %v", ports.ErrNotFound, err)
	case errors.Is(err, fulfillment.ErrRejected):
		return fmt.Errorf("%w: %v", ports.ErrRemoteRejected, err)
	default:
		return fmt.Errorf("%w: %v", ports.ErrRemoteUnavailable, err)
	}
}

func toDomain(dto fulfillment.MemberDTO) (domain.Member, error) {
	if dto.ID == "" {
		return domain.Member{}, invalidPayload("member id missing")
	}
	role, err := identity.ParseRole(dto.Role)
	if err != nil {
		return domain.Member{}, invalidPayload("role %q", dto.Role)
	}
	return domain.Member{
		ID:     dto.ID,
		Name:   dto.Name,
		Email:  dto.Email,
		Phone:  dto.Phone,
		Role:   role,
		Active: dto.Active,
	}, nil
}

func toDraftDTO(draft domain.Draft) fulfillment.MemberDraftDTO {
	return fulfillment.MemberDraftDTO{
		Name:   draft.Name,
		Email:  draft.Email,
		Phone:  draft.Phone,
		Role:   string(draft.Role),
		Active: draft.Active,
	}
}

func invalidPayload(format string, args ...any) error {
	return fmt.Errorf("%w: invalid member payload: %s", ports.ErrRemoteUnavailable, fmt.Sprintf(format, args...))
}
