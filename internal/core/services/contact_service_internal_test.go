package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vkravets/contacts_api/internal/core/domain"
)

// contactBornOn builds a contact whose birthday falls on the given month/day.
func contactBornOn(name string, month time.Month, day int) domain.Contact {
	return domain.Contact{
		FirstName: name,
		Birthday:  time.Date(1990, month, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestFilterUpcomingBirthdays(t *testing.T) {
	today := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	contacts := []domain.Contact{
		contactBornOn("today", time.June, 10),
		contactBornOn("tomorrow", time.June, 11),
		contactBornOn("in-three-days", time.June, 13),
		contactBornOn("on-the-edge", time.June, 17),
		contactBornOn("just-outside", time.June, 18),
		contactBornOn("next-month", time.July, 10),
		contactBornOn("yesterday", time.June, 9),
		contactBornOn("earlier-this-year", time.January, 15),
	}

	matched := filterUpcomingBirthdays(contacts, today, birthdayWindowDays)

	names := make([]string, len(matched))
	for i, c := range matched {
		names[i] = c.FirstName
	}
	assert.Equal(t, []string{"today", "tomorrow", "in-three-days", "on-the-edge"}, names)
}

// A birthday late in December does not wrap into January of the current year: the
// window only looks at this calendar year's occurrence.
func TestFilterUpcomingBirthdays_NoYearWraparound(t *testing.T) {
	today := time.Date(2025, time.December, 28, 0, 0, 0, 0, time.UTC)

	contacts := []domain.Contact{
		contactBornOn("new-years-eve", time.December, 31),
		contactBornOn("early-january", time.January, 2),
	}

	matched := filterUpcomingBirthdays(contacts, today, birthdayWindowDays)

	assert.Len(t, matched, 1)
	assert.Equal(t, "new-years-eve", matched[0].FirstName)
}

func TestFilterUpcomingBirthdays_Empty(t *testing.T) {
	today := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	matched := filterUpcomingBirthdays(nil, today, birthdayWindowDays)

	assert.NotNil(t, matched)
	assert.Empty(t, matched)
}
