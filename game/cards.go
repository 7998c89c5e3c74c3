package game

// Card is a chance card drawn on a draw field.
type Card int

const (
	CardTaxRefund Card = iota
	CardArrest
	CardBigTaxRefund
	CardWallet
	CardHolidays
	CardCondition
	CardGetOut
	CardDividend
	CardUnderpayment
	CardFine
	CardRenovation
	CardOverpayment
	CardInheritance
	CardTax
	CardSecondArrest
	CardScratch
	CardSecondGetOut

	NumberOfCards = int(CardSecondGetOut) + 1
)

const (
	perFieldTax    = 20
	perHouseRepair = 25
)

var cardNames = [NumberOfCards]string{
	"tax refund",
	"go to jail",
	"tax refund",
	"found a wallet",
	"holidays",
	"pay the condition",
	"get out of jail card",
	"dividend",
	"tax underpayment",
	"fine",
	"renovation",
	"tax overpayment",
	"inheritance",
	"pay tax",
	"go to jail",
	"scratch card",
	"get out of jail card",
}

func (c Card) String() string {
	if c < 0 || int(c) >= NumberOfCards {
		return "unknown card"
	}
	return cardNames[c]
}

// DrawCard picks a chance card. The deck is never used up.
func (g *Game) DrawCard() Card {
	return Card(g.source.Between(0, NumberOfCards-1))
}
