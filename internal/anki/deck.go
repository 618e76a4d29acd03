package anki

import (
	"fmt"
	"html"
	"strings"
	"time"

	"codeberg.org/snonux/svenska/internal/vocab"
)

// Card is one word of the deck
type Card struct {
	Swedish  string
	English  string
	Examples []vocab.Example

	// Audio is the spoken word; AudioName its filename inside the package
	Audio     []byte
	AudioName string
}

// CardFromWord converts a word. Audio is attached by the caller.
func CardFromWord(w *vocab.Word) Card {
	return Card{
		Swedish:  w.Original,
		English:  w.Translation,
		Examples: vocab.CloneExamples(w.Examples),
	}
}

// Deck collects cards for export
type Deck struct {
	name    string
	deckID  int64
	modelID int64
	cards   []Card
}

// NewDeck creates an empty deck
func NewDeck(name string) *Deck {
	if name == "" {
		name = DefaultDeckName
	}
	// IDs derive from the clock so that repeated exports create new decks
	now := time.Now().UnixMilli()
	return &Deck{
		name:    name,
		deckID:  now,
		modelID: now + 1,
	}
}

// DefaultDeckName is used when no name is given
const DefaultDeckName = "Svenska"

// Add appends a card
func (d *Deck) Add(card Card) {
	d.cards = append(d.cards, card)
}

// Len returns the number of cards
func (d *Deck) Len() int {
	return len(d.cards)
}

// fields renders the note fields of card in model order
func (c Card) fields() []string {
	audio := ""
	if c.AudioName != "" && len(c.Audio) > 0 {
		audio = fmt.Sprintf("[sound:%s]", c.AudioName)
	}
	return []string{
		html.EscapeString(c.Swedish),
		html.EscapeString(c.English),
		audio,
		examplesHTML(c.Examples),
	}
}

func examplesHTML(examples []vocab.Example) string {
	if len(examples) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, ex := range examples {
		fmt.Fprintf(&b, `<li><span class="sv">%s</span><br><span class="en">%s</span></li>`,
			html.EscapeString(ex.Swedish), html.EscapeString(ex.English))
	}
	b.WriteString("</ul>")
	return b.String()
}
