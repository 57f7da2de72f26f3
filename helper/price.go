package helper

import "theater_manager/model"

// PriceForAge maps an age category to its ticket price. Pure function;
// seat and showing never factor in.
func PriceForAge(age model.AgeCategory) float64 {
	switch age {
	case model.AgeKid:
		return 8
	case model.AgeSenior:
		return 6
	default:
		return 10
	}
}
