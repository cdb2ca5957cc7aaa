package service

import "errors"

// Domain validation errors. Every one of them is raised before the enclosing
// transaction commits, so a caller seeing one can assume nothing changed.
var (
	ErrUserNotFound         = errors.New("user_not_found")
	ErrUnknownCropType      = errors.New("unknown_crop_type")
	ErrInvalidQuantity      = errors.New("invalid_quantity")
	ErrInvalidPosition      = errors.New("invalid_position")
	ErrInsufficientFunds    = errors.New("insufficient_funds")
	ErrInsufficientQuantity = errors.New("insufficient_quantity")
	ErrNoSeedAvailable      = errors.New("no_seed_available")
	ErrPlotOccupied         = errors.New("plot_occupied")
	ErrPlotEmpty            = errors.New("plot_empty")
	ErrPlotNotReady         = errors.New("plot_not_ready")

	ErrUserExists         = errors.New("user_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)
