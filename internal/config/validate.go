// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package config

import (
	"errors"

	"github.com/tomtom215/foodbot/internal/validation"
)

// ErrMissingLINECredentials is returned in production without LINE credentials.
var ErrMissingLINECredentials = errors.New("LINE_CHANNEL_SECRET and LINE_CHANNEL_ACCESS_TOKEN are required in production")

// Validate checks field rules then cross-field constraints.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	if err := c.validateLINE(); err != nil {
		return err
	}
	return c.validateSecurity()
}

func (c *Config) validateLINE() error {
	if !c.IsProduction() {
		return nil
	}
	if c.LINE.ChannelSecret == "" || c.LINE.ChannelAccessToken == "" {
		return ErrMissingLINECredentials
	}
	return nil
}

func (c *Config) validateSecurity() error {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" && len(c.Security.CORSOrigins) > 1 {
			return errors.New("CORS_ORIGINS cannot mix * with explicit origins")
		}
	}
	return nil
}
