package main

import "fyyur/internal/models"

const unsplash = "?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop"

var demoVenues = []models.VenueInput{
	{
		Name:               "The Musical Hop",
		Genres:             []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
		Address:            "1015 Folsom Street",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "123-123-1234",
		Website:            "https://www.themusicalhop.com",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
		ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5" + unsplash + "&w=400&q=60",
	},
	{
		Name:         "The Dueling Pianos Bar",
		Genres:       []string{"Classical", "R&B", "Hip-Hop"},
		Address:      "335 Delancey Street",
		City:         "New York",
		State:        "NY",
		Phone:        "914-003-1132",
		Website:      "https://www.theduelingpianos.com",
		FacebookLink: "https://www.facebook.com/theduelingpianos",
		ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae" + unsplash + "&w=750&q=80",
	},
	{
		Name:         "Park Square Live Music & Coffee",
		Genres:       []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
		Address:      "34 Whiskey Moore Ave",
		City:         "San Francisco",
		State:        "CA",
		Phone:        "415-000-1234",
		Website:      "https://www.parksquarelivemusicandcoffee.com",
		FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
		ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7" + unsplash + "&w=747&q=80",
	},
}

var demoArtists = []models.ArtistInput{
	{
		Name:               "Guns N Petals",
		Genres:             []string{"Rock n Roll"},
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		WebsiteLink:        "https://www.gunsnpetalsband.com",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f" + unsplash + "&w=300&q=80",
	},
	{
		Name:         "Matt Quevado",
		Genres:       []string{"Jazz"},
		City:         "New York",
		State:        "NY",
		Phone:        "300-400-5000",
		FacebookLink: "https://www.facebook.com/mattquevedo923251523",
		ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5" + unsplash + "&w=334&q=80",
	},
	{
		Name:      "The Wild Sax Band",
		Genres:    []string{"Jazz", "Classical"},
		City:      "San Francisco",
		State:     "CA",
		Phone:     "432-325-5432",
		ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61" + unsplash + "&w=794&q=80",
	},
}

// demoShows refer to venues and artists by their position in the lists
// above.
var demoShows = []struct {
	venue, artist int
	start         string
}{
	{0, 0, "2019-05-21T21:30:00.000Z"},
	{2, 1, "2019-06-15T23:00:00.000Z"},
	{2, 2, "2035-04-01T20:00:00.000Z"},
	{2, 2, "2035-04-08T20:00:00.000Z"},
	{2, 2, "2035-04-15T20:00:00.000Z"},
}
