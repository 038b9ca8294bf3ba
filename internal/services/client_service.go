package services

import (
	"context"
	"strings"

	"timetrack-backend/internal/cache"
	"timetrack-backend/internal/models"
)

// ClientService owns clients and their addresses. The "at most one primary
// address per client" invariant lives in the address store's transactions;
// this service only guards ownership and request shape.
type ClientService struct {
	clients   ClientStore
	addresses AddressStore
}

func NewClientService(clients ClientStore, addresses AddressStore) *ClientService {
	return &ClientService{clients: clients, addresses: addresses}
}

func (s *ClientService) Create(ctx context.Context, userID int, req *models.CreateClientRequest) (*models.Client, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, validationf("client email is required")
	}
	if strings.TrimSpace(req.Company) == "" {
		return nil, validationf("client company is required")
	}
	client := &models.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		UserID:  userID,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	cache.InvalidateDashboard(ctx, userID)
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, userID, id int) (*models.Client, error) {
	client, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	addresses, err := s.addresses.ListByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	client.Addresses = addresses
	return client, nil
}

func (s *ClientService) List(ctx context.Context, userID int) ([]models.Client, error) {
	return s.clients.List(ctx, userID)
}

func (s *ClientService) Update(ctx context.Context, userID, id int, req *models.UpdateClientRequest) (*models.Client, error) {
	client, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			return nil, validationf("client email is required")
		}
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Company != nil {
		if strings.TrimSpace(*req.Company) == "" {
			return nil, validationf("client company is required")
		}
		client.Company = *req.Company
	}
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	cache.InvalidateDashboard(ctx, userID)
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, userID, id int) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateDashboard(ctx, userID)
	return nil
}

func (s *ClientService) AddAddress(ctx context.Context, userID, clientID int, req *models.CreateAddressRequest) (*models.Address, error) {
	if _, err := s.getOwned(ctx, userID, clientID); err != nil {
		return nil, err
	}
	address := &models.Address{
		ClientID:   clientID,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsPrimary:  req.IsPrimary,
	}
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, &TransactionError{Op: "create address", Err: err}
	}
	return address, nil
}

func (s *ClientService) SetPrimaryAddress(ctx context.Context, userID, clientID, addressID int) error {
	if _, err := s.getOwned(ctx, userID, clientID); err != nil {
		return err
	}
	if err := s.addresses.SetPrimary(ctx, clientID, addressID); err != nil {
		return mapNotFound(err, "address", addressID)
	}
	return nil
}

func (s *ClientService) DeleteAddress(ctx context.Context, userID, clientID, addressID int) error {
	if _, err := s.getOwned(ctx, userID, clientID); err != nil {
		return err
	}
	address, err := s.addresses.Get(ctx, addressID)
	if err != nil {
		return mapNotFound(err, "address", addressID)
	}
	if address.ClientID != clientID {
		return &NotFoundError{Entity: "address", ID: addressID}
	}
	return s.addresses.Delete(ctx, addressID)
}

func (s *ClientService) getOwned(ctx context.Context, userID, id int) (*models.Client, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "client", id)
	}
	if client.UserID != userID {
		return nil, &NotFoundError{Entity: "client", ID: id}
	}
	return client, nil
}
