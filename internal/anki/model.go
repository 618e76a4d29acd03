package anki

import "time"

var fieldNames = []string{"Swedish", "English", "Audio", "Examples"}

const frontTemplate = `<div class="swedish">{{Swedish}}</div>
{{Audio}}`

const backTemplate = `{{FrontSide}}
<hr id="answer">
<div class="english">{{English}}</div>
{{#Examples}}<div class="examples">{{Examples}}</div>{{/Examples}}`

const reverseFrontTemplate = `<div class="english">{{English}}</div>`

const reverseBackTemplate = `{{FrontSide}}
<hr id="answer">
<div class="swedish">{{Swedish}}</div>
{{Audio}}
{{#Examples}}<div class="examples">{{Examples}}</div>{{/Examples}}`

const css = `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #333;
  background-color: white;
}
.swedish { font-size: 32px; font-weight: bold; color: #005293; margin: 20px 0; }
.english { font-size: 28px; color: #2c3e50; margin: 20px 0; }
.examples ul { list-style: none; padding: 0; text-align: left; }
.examples li { margin: 10px 0; }
.examples .en { font-size: 16px; color: #7f8c8d; font-style: italic; }
hr#answer { margin: 30px 0; border: 0; border-top: 1px solid #ecf0f1; }`

type field struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	RTL    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

type template struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	QFmt  string `json:"qfmt"`
	AFmt  string `json:"afmt"`
	DID   *int64 `json:"did"`
	BQFmt string `json:"bqfmt"`
	BAFmt string `json:"bafmt"`
}

// noteType is the Anki model of a svenska note
type noteType struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Type      int        `json:"type"`
	Mod       int64      `json:"mod"`
	USN       int        `json:"usn"`
	SortField int        `json:"sortf"`
	DID       int64      `json:"did"`
	Req       [][]any    `json:"req"`
	Vers      []int      `json:"vers"`
	Tags      []string   `json:"tags"`
	Fields    []field    `json:"flds"`
	Templates []template `json:"tmpls"`
	CSS       string     `json:"css"`
	LatexPre  string     `json:"latexPre"`
	LatexPost string     `json:"latexPost"`
}

type deckConfig struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Mod              int64  `json:"mod"`
	Desc             string `json:"desc"`
	Collapsed        bool   `json:"collapsed"`
	Dyn              int    `json:"dyn"`
	Conf             int    `json:"conf"`
	USN              int    `json:"usn"`
	NewToday         [2]int `json:"newToday"`
	RevToday         [2]int `json:"revToday"`
	LrnToday         [2]int `json:"lrnToday"`
	TimeToday        [2]int `json:"timeToday"`
	BrowserCollapsed bool   `json:"browserCollapsed"`
	ExtendNew        int    `json:"extendNew"`
	ExtendRev        int    `json:"extendRev"`
}

func (d *Deck) model() noteType {
	fields := make([]field, len(fieldNames))
	for i, name := range fieldNames {
		fields[i] = field{Name: name, Ord: i, Font: "Arial", Size: 20, Media: []string{}}
	}

	return noteType{
		ID:     d.modelID,
		Name:   "Svenska (Basic + Reverse)",
		Mod:    time.Now().Unix(),
		USN:    -1,
		DID:    d.deckID,
		Req:    [][]any{{0, "all", []int{0}}, {1, "all", []int{1}}},
		Vers:   []int{},
		Tags:   []string{},
		Fields: fields,
		Templates: []template{
			{Name: "Svenska → English", Ord: 0, QFmt: frontTemplate, AFmt: backTemplate},
			{Name: "English → Svenska", Ord: 1, QFmt: reverseFrontTemplate, AFmt: reverseBackTemplate},
		},
		CSS:       css,
		LatexPre:  `\documentclass[12pt]{article}\begin{document}`,
		LatexPost: `\end{document}`,
	}
}

func newDeckConfig(id int64, name, desc string, now int64) deckConfig {
	return deckConfig{
		ID:        id,
		Name:      name,
		Mod:       now,
		Desc:      desc,
		Conf:      1,
		ExtendNew: 10,
		ExtendRev: 50,
	}
}
