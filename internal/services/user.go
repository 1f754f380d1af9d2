package services

import (
	"context"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/models"
)

type UserService struct {
	api *apiclient.Client
}

func NewUserService(api *apiclient.Client) *UserService {
	return &UserService{api: api}
}

// Me returns the account the context's token belongs to.
func (s *UserService) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := s.api.Get(ctx, "/auth/users/me/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
