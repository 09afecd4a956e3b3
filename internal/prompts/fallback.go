package prompts

import "math/rand"

// Curated prompt pools, grouped by theme. Every prompt has many possible
// answers so that a single constraining letter still leaves room to play.
var factualPrompts = map[string][]string{
	"Pop Culture & TV": {
		"A character from The Office (US)",
		"A character from Friends",
		"A character from Game of Thrones",
		"A character from Harry Potter",
		"A Netflix original series",
		"A Marvel Cinematic Universe character",
		"A Disney villain",
		"A Pixar movie character",
		"A character from Stranger Things",
		"A reality TV show",
		"A late night talk show host",
	},
	"Office Life & Work": {
		"Something found in an office",
		"An excuse for being late to work",
		"Something you replace at work",
		"Something in a desk drawer",
		"A thing coworkers always steal",
		"An office supply",
		"A reason to leave work early",
		"A thing found in the break room",
		"Something you hide from your boss",
		"A work-from-home essential",
	},
	"Kitchen & Cooking": {
		"Something found in a kitchen drawer",
		"A kitchen appliance",
		"A type of cooking utensil",
		"Something you store in a refrigerator",
		"A baking ingredient",
		"Something found in a spice rack",
		"A breakfast item you cook",
		"A condiment in your fridge door",
		"A type of pasta sauce",
		"A cuisine style",
	},
	"Smart & Science": {
		"A Nobel Prize winning scientist",
		"A famous physicist",
		"A chemical element on the periodic table",
		"A type of logical fallacy",
		"A programming language",
		"A famous mathematician",
		"A space mission or spacecraft",
		"A famous inventor",
		"An astronomical phenomenon",
		"A scientific unit of measurement",
	},
	"Cocktails & Drinks": {
		"A classic cocktail",
		"A type of whiskey or bourbon",
		"A coffee shop drink",
		"A type of wine (by grape or region)",
		"A beer brand",
		"An ingredient in a margarita",
		"Something you mix with vodka",
		"A hot beverage (not coffee)",
		"A smoothie ingredient",
		"A tequila cocktail",
	},
	"Music & Artists": {
		"A Grammy winning artist",
		"A member of a famous band",
		"A 90s one-hit wonder",
		"A hip-hop/rap artist",
		"A famous guitarist",
		"A song that was #1 on Billboard",
		"A famous music festival",
		"A K-pop group or artist",
		"A famous music producer",
		"A singer who acted in movies",
	},
	"Adult Humor & Life": {
		"Something you dread on Monday mornings",
		"An excuse for being late",
		"Something you replace",
		"A way to get from here to there",
		"Something you regret buying online",
		"Something that gets better with age",
		"A reason to need coffee",
		"Something you pretend to understand",
		"A skill you lie about on your resume",
		"Something you Google at 3 AM",
	},
	"Food & Guilty Pleasures": {
		"A pizza topping",
		"A type of cheese",
		"A late-night snack",
		"A comfort food",
		"An ice cream flavor",
		"Something you dip in ranch",
		"A breakfast cereal",
		"A food you eat straight from the container",
		"A viral food trend",
		"A fast food menu item",
	},
	"Tech & Internet": {
		"A social media platform",
		"An app on your phone",
		"A thing that needs charging",
		"A famous tech CEO",
		"A video game console",
		"A meme that went viral",
		"Something you do instead of working",
		"A startup buzzword",
		"A thing with a password",
		"A browser tab you never close",
	},
}

// categoryPools maps a requested category to the pools it draws from.
// Unknown categories fall back to the whole collection.
var categoryPools = map[string][]string{
	"easy":       {"Food & Guilty Pleasures", "Tech & Internet", "Pop Culture & TV"},
	"tricky":     {"Smart & Science", "Adult Humor & Life"},
	"party":      {"Cocktails & Drinks", "Adult Humor & Life", "Music & Artists"},
	"popculture": {"Pop Culture & TV", "Music & Artists", "Tech & Internet"},
	"adulting":   {"Adult Humor & Life", "Office Life & Work"},
	"tech":       {"Tech & Internet", "Smart & Science"},
	"food":       {"Food & Guilty Pleasures", "Kitchen & Cooking", "Cocktails & Drinks"},
	"kitchen":    {"Kitchen & Cooking", "Food & Guilty Pleasures"},
	"science":    {"Smart & Science"},
}

// Fallback returns count prompts drawn at random from the curated pools
// for the given category. It always returns exactly count prompts as long
// as the pools hold that many.
func Fallback(category string, count int) []string {
	var source []string
	if pools, ok := categoryPools[category]; ok {
		for _, pool := range pools {
			source = append(source, factualPrompts[pool]...)
		}
	} else {
		for _, pool := range factualPrompts {
			source = append(source, pool...)
		}
	}

	shuffled := make([]string, len(source))
	copy(shuffled, source)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}
