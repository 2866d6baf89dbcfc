package models

type IconID string

const (
	IconMonitor  IconID = "monitor"
	IconBook     IconID = "book"
	IconFlask    IconID = "flask"
	IconHome     IconID = "home"
	IconUtensils IconID = "utensils"
	IconActivity IconID = "activity"
	IconHeart    IconID = "heart"
	IconTree     IconID = "tree"
)

// DefaultIcons is the rotation used for facilities stored without an icon.
var DefaultIcons = []IconID{
	IconMonitor, IconBook, IconFlask, IconHome,
	IconUtensils, IconActivity, IconHeart, IconTree,
}

func (id IconID) Valid() bool {
	for _, known := range DefaultIcons {
		if id == known {
			return true
		}
	}
	return false
}

func IconForPosition(index int) IconID {
	if index < 0 {
		index = -index
	}
	return DefaultIcons[index%len(DefaultIcons)]
}

// AssignIcons fills in missing or unknown icons by list position.
func AssignIcons(items []Facility) {
	for i := range items {
		if !items[i].Icon.Valid() {
			items[i].Icon = IconForPosition(i)
		}
	}
}
