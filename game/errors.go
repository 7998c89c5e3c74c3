package game

// GameError is a rule violation, with a stable code for whoever is showing it.
type GameError struct {
	Code string
	Msg  string
}

func (e *GameError) ErrorCode() string { return e.Code }
func (e *GameError) Error() string     { return e.Msg }

var (
	// ErrInvalidId means an id is outside the allowed range
	ErrInvalidId = &GameError{"INVALIDID", "id must be between min and max id"}
	// ErrRepeatedId means two things were given the same id
	ErrRepeatedId = &GameError{"REPEATEDID", "id is repeated"}
	// ErrBadValue is for amounts and config values that make no sense
	ErrBadValue = &GameError{"BADVALUE", "bad value"}

	// ErrNotOwned means the player does not own the field
	ErrNotOwned = &GameError{"NOTOWNED", "cannot sell or mortgage a field that is not yours"}
	// ErrAlreadyOwned means the bank does not have the field to sell
	ErrAlreadyOwned = &GameError{"ALREADYOWNED", "field is already owned by a player"}
	// ErrAlreadyMortgaged means the field, or one in its district, is mortgaged
	ErrAlreadyMortgaged = &GameError{"ALREADYMORTGAGED", "cannot mortgage or sell a field that is mortgaged"}
	// ErrNotMortgaged means there is no mortgage to end
	ErrNotMortgaged = &GameError{"NOTMORTGAGED", "field is not mortgaged"}
	// ErrBuiltUp means the district has houses on it
	ErrBuiltUp = &GameError{"BUILTUP", "field is built up"}
	// ErrNotForSale is for fields that cannot be traded right now
	ErrNotForSale = &GameError{"NOTFORSALE", "field is not for sale"}

	// ErrNoMoney means the player does not have the cash
	ErrNoMoney = &GameError{"NOMONEY", "player has not got enough money"}
	// ErrNoCards means the player has no get out of jail cards
	ErrNoCards = &GameError{"NOCARDS", "player has no get out of jail cards"}

	// ErrPropertyLevel means the property is at the min or max level
	ErrPropertyLevel = &GameError{"PROPERTYLEVEL", "property level out of range"}
	// ErrUnequalBuilding means the district has to be built evenly
	ErrUnequalBuilding = &GameError{"UNEQUALBUILDING", "properties have to be built equally"}
	// ErrNotOwnedDistrict means houses need the whole district
	ErrNotOwnedDistrict = &GameError{"NOTOWNEDDISTRICT", "player is not full district owner"}

	// ErrAlreadyArrested means the player is in jail already
	ErrAlreadyArrested = &GameError{"ALREADYARRESTED", "cannot arrest a player who is already arrested"}
	// ErrNotArrested means the player is not in jail
	ErrNotArrested = &GameError{"NOTARRESTED", "cannot release a player who is not arrested"}

	// ErrInvalidPlayerCount means too few or too many players
	ErrInvalidPlayerCount = &GameError{"PLAYERCOUNT", "number of players must be between min and max"}
	// ErrRoundCountTooShort means the round limit is below the minimum
	ErrRoundCountTooShort = &GameError{"TOOSHORT", "number of rounds cannot be smaller than min"}
	// ErrNotAllBankrupt is asking for a last-one-standing winner too early
	ErrNotAllBankrupt = &GameError{"NOTALLBANKRUPT", "more than one player is still in the game"}
)
