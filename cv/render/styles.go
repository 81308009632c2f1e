package render

// TextStyle captures the font and colour used for one block kind.
type TextStyle struct {
	Family     string
	Style      string
	Size       float64
	LineHeight float64
	Color      [3]int
	SpaceAbove float64
	SpaceBelow float64
}

const (
	fontFamily = "Helvetica"
	pageMargin = 18.0
)

var (
	nameColor    = [3]int{44, 62, 80}
	titleColor   = [3]int{127, 140, 141}
	headingColor = [3]int{52, 73, 94}
	bodyColor    = [3]int{33, 37, 41}
	metaColor    = [3]int{90, 98, 104}
)

// StyleMap centralizes the formatting of each block kind.
var StyleMap = map[BlockKind]TextStyle{
	BlockName:       {Family: fontFamily, Style: "B", Size: 20, LineHeight: 9, Color: nameColor, SpaceBelow: 1},
	BlockTitle:      {Family: fontFamily, Size: 14, LineHeight: 7, Color: titleColor, SpaceBelow: 1},
	BlockContact:    {Family: fontFamily, Size: 9.5, LineHeight: 5, Color: metaColor, SpaceBelow: 2},
	BlockHeading:    {Family: fontFamily, Style: "B", Size: 13, LineHeight: 7, Color: headingColor, SpaceAbove: 5, SpaceBelow: 1.5},
	BlockEntryTitle: {Family: fontFamily, Style: "B", Size: 10.5, LineHeight: 5.5, Color: bodyColor, SpaceAbove: 1.5},
	BlockEntryMeta:  {Family: fontFamily, Style: "I", Size: 10, LineHeight: 5, Color: metaColor},
	BlockParagraph:  {Family: fontFamily, Size: 10, LineHeight: 5, Color: bodyColor, SpaceBelow: 1},
}
