// Package sample generates synthetic datasets with the kinds of defects the
// profiler and cleaner are meant to find.
package sample

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/jaswdr/faker"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// Columns of every generated dataset.
var Columns = []string{"id", "name", "email", "city", "department", "age", "salary", "join_date"}

var (
	departments = []string{"Sales", "Marketing", "Finance", "Support"}
	nullLikes   = []string{"N/A", "null", "undefined", "-"}
	blankable   = []string{"email", "city", "age", "salary"}
	dateForms   = []string{"2006-01-02", "01/02/2006", "Jan 2, 2006"}
)

// Injection rates, percent per row.
const (
	pctMissing    = 6
	pctNullLike   = 3
	pctWhitespace = 5
	pctOutlier    = 2
	pctDuplicate  = 4
	pctDominant   = 60
)

// Generate returns rows records built from seed. The same seed always yields
// the same dataset.
func Generate(rows int, seed int64) *dataset.Dataset {
	f := faker.NewWithSeed(rand.NewSource(seed))
	g := generator{f: f}
	recs := make([]dataset.Record, 0, max(rows, 0))
	for i := 0; i < rows; i++ {
		if i > 0 && g.roll(pctDuplicate) {
			recs = append(recs, recs[len(recs)-1].Clone())
			continue
		}
		recs = append(recs, g.record(i+1))
	}
	cols := make([]string, len(Columns))
	copy(cols, Columns)
	return dataset.New(cols, recs)
}

type generator struct {
	f faker.Faker
}

func (g generator) roll(pct int) bool {
	return g.f.IntBetween(1, 100) <= pct
}

func (g generator) record(id int) dataset.Record {
	f := g.f
	dept := "Engineering"
	if !g.roll(pctDominant) {
		dept = f.RandomStringElement(departments)
	}
	joined := time.Date(f.IntBetween(2015, 2024), time.Month(f.IntBetween(1, 12)), f.IntBetween(1, 28), 0, 0, 0, 0, time.UTC)
	salary := f.IntBetween(35000, 120000)
	if g.roll(pctOutlier) {
		salary *= 10
	}
	r := dataset.Record{
		"id":         strconv.Itoa(id),
		"name":       f.Person().Name(),
		"email":      f.Internet().Email(),
		"city":       f.Address().City(),
		"department": dept,
		"age":        strconv.Itoa(f.IntBetween(21, 65)),
		"salary":     strconv.Itoa(salary),
		"join_date":  joined.Format(f.RandomStringElement(dateForms)),
	}
	if g.roll(pctWhitespace) {
		r["name"] = "  " + r["name"] + " "
	}
	if g.roll(pctNullLike) {
		r["city"] = f.RandomStringElement(nullLikes)
	}
	if g.roll(pctMissing) {
		r[f.RandomStringElement(blankable)] = ""
	}
	return r
}
