// Package geocode resolves textual venue and address clues to coordinates.
//
// A Geocoder turns the clues of one club into ordered candidate queries
// ("<clue>, Portugal"), asks a Provider for each in turn and stops at the
// first hit. Provider errors and empty results only move on to the next
// candidate; running out of candidates is a miss, never an error. All
// provider calls made through one Geocoder are spaced by a shared pacing
// delay, because the public geocoding service enforces one request per
// second.
//
// Results are approximate and unverified. Venue names are the most precise
// clue the catalogue offers; addresses and club names often resolve to the
// wrong town, so they come later and the club name is off by default.
package geocode
