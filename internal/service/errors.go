package service

import "errors"

// Sentinel errors shared across services and mapped to transport
// responses by the adapters.
var (
	// Not found
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrMatchNotFound       = errors.New("match not found")

	// Validation and business rules
	ErrValidation            = errors.New("validation failed")
	ErrNotEnoughParticipants = errors.New("at least two participants are required")
	ErrUnknownClub           = errors.New("club is not in the catalog")
	ErrNoTournamentSelected  = errors.New("no tournament selected for this channel")

	// Conflicts
	ErrNameConflict  = errors.New("participant name is already taken in this tournament")
	ErrAlreadyPlayed = errors.New("result already recorded for this match")
	ErrNotPlayedYet  = errors.New("match has no recorded result to correct")
	// ErrScheduleExists gates regeneration: discarding recorded results
	// requires explicit confirmation from the caller.
	ErrScheduleExists = errors.New("schedule already exists, regeneration discards recorded results")

	// Data integrity
	ErrUnknownParticipant = errors.New("match references a participant missing from the roster")
)
