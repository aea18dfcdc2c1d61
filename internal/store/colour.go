package store

import (
	"fmt"
	"math/rand/v2"
)

// DefaultNotebookColour is used when a notebook is created without a colour.
const DefaultNotebookColour = "#FFFFFF"

// RandomRedPinkHex returns a hex colour from the red-pink band used for new
// sections: red in [155,255), green in [50,100), blue in [80,160).
func RandomRedPinkHex() string {
	red := rand.IntN(100) + 155
	green := rand.IntN(50) + 50
	blue := rand.IntN(80) + 80
	return fmt.Sprintf("#%02x%02x%02x", red, green, blue)
}
