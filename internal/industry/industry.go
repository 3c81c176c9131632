// Package industry assigns a keyword list to one industry of a closed taxonomy.
package industry

import (
	"strings"

	"github.com/jonathan/namesmith/internal/vocabulary"
)

// Industry is a taxonomy label.
type Industry string

const (
	Tech    Industry = "tech"
	Food    Industry = "food"
	Health  Industry = "health"
	Fashion Industry = "fashion"
	Eco     Industry = "eco"
	Pet     Industry = "pet"
	Beauty  Industry = "beauty"
	General Industry = vocabulary.GeneralIndustry
)

func (i Industry) String() string {
	return string(i)
}

// Classifier scores keywords against the vocabulary's industry terms.
type Classifier struct {
	industries []vocabulary.IndustryTerms
	terms      map[Industry][]string
}

// NewClassifier builds a classifier over v's ordered taxonomy.
func NewClassifier(v *vocabulary.Vocabulary) *Classifier {
	c := &Classifier{
		industries: v.Industries,
		terms:      make(map[Industry][]string, len(v.Industries)),
	}
	for _, ind := range v.Industries {
		c.terms[Industry(ind.Name)] = ind.Terms
	}
	return c
}

// Detect returns the industry whose terms occur as substrings of the most
// keywords. Each keyword adds at most one point per industry. Ties go to the
// industry that scored first; no score at all yields General.
func (c *Classifier) Detect(keywords []string) Industry {
	scores := make(map[Industry]int, len(c.industries))
	var firstScored []Industry

	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		for _, ind := range c.industries {
			if !containsAny(kw, ind.Terms) {
				continue
			}
			name := Industry(ind.Name)
			if scores[name] == 0 {
				firstScored = append(firstScored, name)
			}
			scores[name]++
		}
	}

	best, bestScore := General, 0
	for _, name := range firstScored {
		if scores[name] > bestScore {
			best, bestScore = name, scores[name]
		}
	}
	return best
}

// Terms returns an industry's term list. General and unknown industries have none.
func (c *Classifier) Terms(ind Industry) []string {
	return c.terms[ind]
}

// Known reports whether ind is part of the taxonomy.
func (c *Classifier) Known(ind Industry) bool {
	if ind == General {
		return true
	}
	_, ok := c.terms[ind]
	return ok
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
