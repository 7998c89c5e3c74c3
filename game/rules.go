package game

// Board layout. Field types are fixed by id, the board file only carries
// names and prices.
const (
	NumberOfFields = 40

	StartID    = 0
	JailID     = 10
	ParkingID  = 20
	GoToJailID = 30

	MaxPropertyLevel   = 5
	NumberOfStations   = 4
	NumberOfServices   = 2
	MinNumberOfPlayers = 2
	MaxNumberOfPlayers = 6
	MinNumberOfRounds  = 1
	MaxNameLength      = 15

	// NoRoundLimit means the game goes on until one player is left
	NoRoundLimit = 0
	// NoPosition is where bankrupt players are
	NoPosition = -1

	// JailRounds is how long a player can sit in jail before paying
	JailRounds = 3
	// DoublesToJail is how many doubles in a row get a player arrested
	DoublesToJail = 3
)

var (
	TaxIDs       = []int{4, 38}
	StationIDs   = []int{5, 15, 25, 35}
	ServiceIDs   = []int{12, 28}
	DrawFieldIDs = []int{2, 7, 17, 22, 33, 36}
	PropertyIDs  = []int{1, 3, 6, 8, 9, 11, 13, 14, 16, 18, 19, 21,
		23, 24, 26, 27, 29, 31, 32, 34, 37, 39}
)

// District is the colour of a group of properties.
type District string

const (
	Grey    District = "grey"
	White   District = "white"
	Magenta District = "magenta"
	Cyan    District = "cyan"
	Red     District = "red"
	Yellow  District = "yellow"
	Green   District = "green"
	Blue    District = "blue"
)

// Districts lists all districts in board order.
var Districts = []District{Grey, White, Magenta, Cyan, Red, Yellow, Green, Blue}

var districtSizes = map[District]int{
	Grey:    2,
	White:   3,
	Magenta: 3,
	Cyan:    3,
	Red:     3,
	Yellow:  3,
	Green:   3,
	Blue:    2,
}

// Size is how many properties make the whole district.
func (d District) Size() int {
	return districtSizes[d]
}

// Valid says if the district is one of the board's colours.
func (d District) Valid() bool {
	_, ok := districtSizes[d]
	return ok
}

// Settings are the money rules that can be changed from the board file.
type Settings struct {
	StartMoney    int `json:"startMoney"`
	Payment       int `json:"payment"`
	Deposit       int `json:"deposit"`
	StartBid      int `json:"startBid"`
	BidDifference int `json:"bidDifference"`
}

// DefaultSettings are the standard rules.
func DefaultSettings() Settings {
	return Settings{
		StartMoney:    1500,
		Payment:       200,
		Deposit:       50,
		StartBid:      10,
		BidDifference: 10,
	}
}

// Validate checks every amount is usable.
func (s Settings) Validate() error {
	if s.StartMoney < 0 || s.Payment < 0 || s.Deposit < 0 {
		return ErrBadValue
	}
	if s.StartBid <= 0 || s.BidDifference <= 0 {
		return ErrBadValue
	}
	return nil
}

// ValidateName checks a player name can be shown on the board.
func ValidateName(name string) error {
	if name == "" || len([]rune(name)) > MaxNameLength {
		return ErrBadValue
	}
	return nil
}
