package nairaland

import (
	"maps"
	"slices"
)

var defaultBoards = map[string]int{
	"Technology":                              8,
	"Programming":                             34,
	"software_programmer_market":              76,
	"Webmasters":                              30,
	"web_market":                              52,
	"Computers":                               22,
	"computer_market":                         74,
	"Phones":                                  16,
	"phone_internet_market":                   75,
	"Graphics_video":                          45,
	"graphics_video_market":                   51,
	"Technology_market":                       54,
	"Entertainment":                           12,
	"Jokes":                                   15,
	"Tv_movies":                               4,
	"satelite_tv_tech":                        58,
	"Music_radio":                             3,
	"rap_battles":                             60,
	"music_business":                          59,
	"Celebrities":                             46,
	"Fashion":                                 37,
	"fashion_clothing_market":                 39,
	"Events":                                  7,
	"Sports":                                  14,
	"european_football":                       66,
	"Gaming":                                  10,
	"video_games_and_gadgets_for_sale":        71,
	"Forum_games":                             33,
	"Literature_writing":                      11,
	"poems_for_review":                        36,
	"Pictures":                                81,
	"Nairaland_general":                       9,
	"foreign_affairs":                         61,
	"ethnic_racial_or_sectarian_politics":     40,
	"violent_disgusting_non_celebrity_crimes": 1,
	"Romance":                                 21,
	"dating_and_meeting_zone":                 38,
	"Business":                                24,
	"business_to_business":                    49,
	"adverts":                                 32,
	"Jobs_vacancies":                          29,
	"Career":                                  35,
	"certification_and_training_adverts":      62,
	"NYSC":                                    79,
	"Education":                               13,
	"educational_services":                    57,
	"Autos":                                   26,
	"Cartalk":                                 78,
	"Properties":                              47,
	"Health":                                  19,
	"Travel":                                  2,
	"travel_ads":                              77,
	"Family":                                  5,
	"Culture":                                 55,
	"Religion":                                17,
	"islam_for_muslims":                       44,
	"Food":                                    41,
	"Nairaland_ads":                           80,
}

// Directory maps board names to the numeric ids the forum expects. A
// Directory never changes after it is built.
type Directory struct {
	ids map[string]int
}

var defaultDirectory = NewDirectory(defaultBoards)

// DefaultDirectory returns every board the forum is known to have.
func DefaultDirectory() Directory {
	return defaultDirectory
}

// NewDirectory builds a Directory out of a copy of boards.
func NewDirectory(boards map[string]int) Directory {
	return Directory{ids: maps.Clone(boards)}
}

// With returns a new Directory with the boards in extra added, extra wins on
// conflicting names.
func (d Directory) With(extra map[string]int) Directory {
	ids := maps.Clone(d.ids)
	if ids == nil {
		ids = map[string]int{}
	}
	maps.Copy(ids, extra)
	return Directory{ids: ids}
}

// Lookup returns the id of the board called name, names are matched exactly.
func (d Directory) Lookup(name string) (int, error) {
	id, ok := d.ids[name]
	if !ok {
		return 0, &UnknownBoardError{Name: name}
	}
	return id, nil
}

// Names returns every board name in sorted order.
func (d Directory) Names() []string {
	return slices.Sorted(maps.Keys(d.ids))
}

func (d Directory) Len() int {
	return len(d.ids)
}

// LookupBoardID looks name up in DefaultDirectory.
func LookupBoardID(name string) (int, error) {
	return defaultDirectory.Lookup(name)
}
