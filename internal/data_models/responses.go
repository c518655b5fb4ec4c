package dto

import model "skillhub.com/skillhub/internal/models"

type TokenResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	Profile     *model.Profile `json:"profile"`
}

func NewTokenResponse(token string, profile *model.Profile) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Profile:     profile,
	}
}
