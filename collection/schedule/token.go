package schedule

// RowKind is the coarse classification the extractor gives each table row.
type RowKind int

const (
	RowSentinel RowKind = iota
	RowHeader
	RowSection
	RowExam
)

func (k RowKind) String() string {
	switch k {
	case RowSentinel:
		return "sentinel"
	case RowHeader:
		return "header"
	case RowSection:
		return "section"
	case RowExam:
		return "exam"
	}
	return "unknown"
}

// markers the extractor puts in front of the scraped row text
const (
	SentinelText  = " NXC"
	SectionMarker = "...."
	ExamMarker    = "****"
)

// Token is one scraped row.
// Email holds the address of the row's mailto anchor when the row had one.
type Token struct {
	Kind  RowKind
	Text  string
	Email string
}

func Sentinel() Token { return Token{Kind: RowSentinel, Text: SentinelText} }

func HeaderToken(department string, text string) Token {
	return Token{Kind: RowHeader, Text: department + " " + text}
}

func SectionToken(text string, email string) Token {
	return Token{Kind: RowSection, Text: SectionMarker + text, Email: email}
}

func ExamToken(text string) Token {
	return Token{Kind: RowExam, Text: ExamMarker + text}
}

// Group is the run of tokens describing one course listing.
type Group []Token

func (g Group) Texts() []string {
	texts := make([]string, len(g))
	for i, t := range g {
		texts[i] = t.Text
	}
	return texts
}
