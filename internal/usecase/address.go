package usecase

import (
	"context"

	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
)

// AddressUseCase manages customer delivery addresses.
type AddressUseCase struct {
	addresses repository.AddressRepository
}

// NewAddressUseCase constructs AddressUseCase.
func NewAddressUseCase(addresses repository.AddressRepository) *AddressUseCase {
	return &AddressUseCase{addresses: addresses}
}

func validateAddress(address *model.Address) error {
	if address.Street == "" || address.City == "" || address.State == "" || address.ZipCode == "" {
		return domainErrors.ErrInvalidInput
	}
	return nil
}

// Create stores a new address for the user.
func (u *AddressUseCase) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	if err := validateAddress(address); err != nil {
		return nil, err
	}
	return u.addresses.Create(ctx, address)
}

// Update rewrites an address owned by the user.
func (u *AddressUseCase) Update(ctx context.Context, address *model.Address) error {
	if err := validateAddress(address); err != nil {
		return err
	}
	return u.addresses.Update(ctx, address)
}

// Delete removes an address owned by the user.
func (u *AddressUseCase) Delete(ctx context.Context, userID, id int64) error {
	return u.addresses.Delete(ctx, userID, id)
}

// Get fetches an address owned by the user.
func (u *AddressUseCase) Get(ctx context.Context, userID, id int64) (*model.Address, error) {
	return u.addresses.GetByID(ctx, userID, id)
}

// List returns the user's addresses, default first.
func (u *AddressUseCase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	return u.addresses.ListByUser(ctx, userID)
}
