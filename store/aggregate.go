package store

import (
	"bjquota/models"
)

// Aggregate holds the parsed records of one source document plus two derived
// lookup indexes. Entry content is immutable after construction; the indexes
// are pure derived state, never serialized, rebuilt after a JSON load.
type Aggregate struct {
	Metadata            models.DocumentMetadata    `json:"metadata"`
	WaitingListEntries  []models.WaitingListEntry  `json:"waiting_list_entries"`
	ScoreRankingEntries []models.ScoreRankingEntry `json:"score_ranking_entries"`

	codeIndex      map[string]int
	partialIDIndex map[string]int
}

// NewAggregate constructs an aggregate and builds its indexes eagerly, so an
// aggregate handed to the store is always ready for concurrent reads.
func NewAggregate(meta models.DocumentMetadata, waiting []models.WaitingListEntry, score []models.ScoreRankingEntry) *Aggregate {
	a := &Aggregate{
		Metadata:            meta,
		WaitingListEntries:  waiting,
		ScoreRankingEntries: score,
	}
	a.BuildIndexes()
	return a
}

// MaskedKey derives the partial-ID index key from the visible segments of a
// masked ID number.
func MaskedKey(prefix, suffix string) string {
	return prefix + "****" + suffix
}

// BuildIndexes clears and rebuilds both local indexes. A duplicate
// application code within one document silently overwrites the earlier
// position; Validate surfaces that as a warning.
//
// The partial-ID key re-derives the mask boundaries from the stored masked
// id_number (first 6 + "****" + last 4); the source is already masked, so no
// unmasked data is involved.
func (a *Aggregate) BuildIndexes() {
	a.codeIndex = make(map[string]int, len(a.WaitingListEntries)+len(a.ScoreRankingEntries))
	a.partialIDIndex = make(map[string]int)

	for i, e := range a.WaitingListEntries {
		a.codeIndex[e.ApplicationCode] = i
	}
	for i, e := range a.ScoreRankingEntries {
		a.codeIndex[e.ApplicationCode] = i
		if len(e.IDNumber) >= 10 {
			key := MaskedKey(e.IDNumber[:6], e.IDNumber[len(e.IDNumber)-4:])
			a.partialIDIndex[key] = i
		}
	}
}

// FindByApplicationCode returns the format-appropriate projection of the
// single entry with the given code, or false when absent.
func (a *Aggregate) FindByApplicationCode(code string) (models.SearchHit, bool) {
	if a.codeIndex == nil {
		a.BuildIndexes()
	}

	i, ok := a.codeIndex[code]
	if !ok {
		return models.SearchHit{}, false
	}

	switch a.Metadata.Format {
	case models.FormatWaitingList:
		return a.waitingHit(i), true
	case models.FormatScoreRanking:
		return a.scoreHit(i), true
	default:
		return models.SearchHit{}, false
	}
}

// FindByPartialID returns zero or one score-ranking entries whose masked ID
// matches prefix + "****" + suffix exactly. Only score-ranking documents
// carry ID numbers.
func (a *Aggregate) FindByPartialID(prefix, suffix string) []models.SearchHit {
	if a.partialIDIndex == nil {
		a.BuildIndexes()
	}

	i, ok := a.partialIDIndex[MaskedKey(prefix, suffix)]
	if !ok {
		return nil
	}
	return []models.SearchHit{a.scoreHit(i)}
}

func (a *Aggregate) waitingHit(i int) models.SearchHit {
	e := a.WaitingListEntries[i]
	return models.SearchHit{
		Type:            models.FormatWaitingList,
		SequenceNumber:  e.SequenceNumber,
		ApplicationCode: e.ApplicationCode,
		WaitingTime:     &e.WaitingTime,
	}
}

func (a *Aggregate) scoreHit(i int) models.SearchHit {
	e := a.ScoreRankingEntries[i]
	return models.SearchHit{
		Type:                     models.FormatScoreRanking,
		SequenceNumber:           e.SequenceNumber,
		ApplicationCode:          e.ApplicationCode,
		ApplicantName:            e.ApplicantName,
		IDNumber:                 e.IDNumber,
		FamilyGenerationCount:    e.FamilyGenerationCount,
		TotalFamilyScore:         e.TotalFamilyScore,
		EarliestRegistrationTime: &e.EarliestRegistrationTime,
	}
}

// EntryCount returns the number of typed entries the aggregate holds.
func (a *Aggregate) EntryCount() int {
	return len(a.WaitingListEntries) + len(a.ScoreRankingEntries)
}

// ApplicationCodes returns every application code in entry order, across
// whichever entry list the format uses.
func (a *Aggregate) ApplicationCodes() []string {
	codes := make([]string, 0, a.EntryCount())
	for _, e := range a.WaitingListEntries {
		codes = append(codes, e.ApplicationCode)
	}
	for _, e := range a.ScoreRankingEntries {
		codes = append(codes, e.ApplicationCode)
	}
	return codes
}

// MaskedKeys returns the partial-ID keys derivable from the aggregate's
// score-ranking entries, in entry order.
func (a *Aggregate) MaskedKeys() []string {
	var keys []string
	for _, e := range a.ScoreRankingEntries {
		if len(e.IDNumber) >= 10 {
			keys = append(keys, MaskedKey(e.IDNumber[:6], e.IDNumber[len(e.IDNumber)-4:]))
		}
	}
	return keys
}
