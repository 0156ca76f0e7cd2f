package services

import (
	"errors"
	"fmt"
)

// Error categories. Specific errors wrap one of these, so callers can match
// either the concrete failure or its category with errors.Is. Every category
// is raised before any mutation: an operation that fails leaves the
// tournament document untouched.
var (
	ErrValidation   = errors.New("validation failed")
	ErrPrecondition = errors.New("precondition failed")
	ErrNotFound     = errors.New("requested resource not found")
	ErrConflict     = errors.New("conflict")
)

// Not found
var (
	ErrTournamentNotFound = fmt.Errorf("%w: tournament", ErrNotFound)
	ErrGroupNotFound      = fmt.Errorf("%w: group", ErrNotFound)
	ErrStageNotFound      = fmt.Errorf("%w: stage", ErrNotFound)
	ErrSlotNotFound       = fmt.Errorf("%w: bracket slot", ErrNotFound)
	ErrSquadNotFound      = fmt.Errorf("%w: squad", ErrNotFound)
	ErrMatchNotFound      = fmt.Errorf("%w: match", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
)

// Validation / business rules
var (
	ErrTooManyQualifiers    = fmt.Errorf("%w: qualifier list exceeds the group's qualify count", ErrValidation)
	ErrQualifierNotInGroup  = fmt.Errorf("%w: qualifier is not a member of the group", ErrValidation)
	ErrFinalSlotFixed       = fmt.Errorf("%w: final slots are wired to the semi final winners", ErrValidation)
	ErrInvalidSlot          = fmt.Errorf("%w: unknown bracket slot id", ErrValidation)
	ErrInvalidSlotSide      = fmt.Errorf("%w: slot side must be 'a' or 'b'", ErrValidation)
	ErrInvalidSeed          = fmt.Errorf("%w: malformed seed reference", ErrValidation)
	ErrInvalidStageType     = fmt.Errorf("%w: stage type must be 'group' or 'knockout'", ErrValidation)
	ErrInvalidMoveDirection = fmt.Errorf("%w: move direction must be 'up' or 'down'", ErrValidation)
	ErrInvalidMatchStatus   = fmt.Errorf("%w: invalid match status", ErrValidation)
	ErrWinnerNotInMatch     = fmt.Errorf("%w: winner must be one of the match teams", ErrValidation)
	ErrNoGroups             = fmt.Errorf("%w: tournament has no groups to map", ErrValidation)
	ErrTournamentName       = fmt.Errorf("%w: tournament name is required", ErrValidation)
	ErrPasswordTooShort     = fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
)

// Preconditions (illegal state transitions)
var (
	ErrTournamentLocked        = fmt.Errorf("%w: tournament has started, structural changes are frozen", ErrPrecondition)
	ErrQualifierWindowClosed   = fmt.Errorf("%w: qualifiers can only be confirmed before lock or while the group stage is active", ErrPrecondition)
	ErrStageMatchesUnfinished  = fmt.Errorf("%w: stage has unfinished matches", ErrPrecondition)
	ErrLastStage               = fmt.Errorf("%w: tournament must keep at least one stage", ErrPrecondition)
	ErrInvalidStatusTransition = fmt.Errorf("%w: invalid tournament status transition", ErrPrecondition)
)

// Conflicts
var (
	ErrSquadInOtherGroup = fmt.Errorf("%w: squad already belongs to another group", ErrConflict)
	ErrSeedTaken         = fmt.Errorf("%w: seed already used in another slot of this round", ErrConflict)
	ErrEmailTaken        = fmt.Errorf("%w: email is already taken", ErrConflict)
)

// Authentication
var ErrInvalidCredentials = errors.New("invalid email or password")
