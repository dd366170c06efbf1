package domain

// Portion keys of the inventory pools
const (
	PortionVegCombo         = "PORTION-VC"
	PortionSaladBar         = "PORTION-SB"
	PortionNonVegComboLunch = "PORTION-NVC"
	PortionNonVegComboNight = "PORTION-D"
)

// portionKeyRef identifies an item inside a section.
// Section "" matches the title in every section.
type portionKeyRef struct {
	Section string
	Title   string
}

// portionKeyTable fixed catalog rule (title, section) -> portion key.
// NON VEG COMBO is served twice a day from two separate pools.
var portionKeyTable = map[portionKeyRef]string{
	{Section: "", Title: "VEG COMBO"}:                   PortionVegCombo,
	{Section: "", Title: "SALAD BAR"}:                   PortionSaladBar,
	{Section: SectionAfternoon, Title: "NON VEG COMBO"}: PortionNonVegComboLunch,
	{Section: SectionNight, Title: "NON VEG COMBO"}:     PortionNonVegComboNight,
}

// PortionKeyFor returns the portion key gating an item, or "" if unlimited
func PortionKeyFor(itemTitle, sectionName string) string {
	if key, ok := portionKeyTable[portionKeyRef{Section: sectionName, Title: itemTitle}]; ok {
		return key
	}
	if key, ok := portionKeyTable[portionKeyRef{Title: itemTitle}]; ok {
		return key
	}
	return ""
}

// PortionKeys returns every known portion key
func PortionKeys() []string {
	return []string{
		PortionVegCombo,
		PortionSaladBar,
		PortionNonVegComboLunch,
		PortionNonVegComboNight,
	}
}

// IsKnownPortionKey returns true if key belongs to the catalog
func IsKnownPortionKey(key string) bool {
	for _, k := range PortionKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// scheduleTemplate static daily schedule; the fetched menu only adds
// descriptions and counts on top of it
var scheduleTemplate = []MenuSection{
	{
		Name: SectionMorning,
		Time: "8:00 – 11:00 AM",
		Items: []MenuItem{
			{Title: "BREAKFAST", Time: "8:00 – 8:40 AM", Price: 65},
			{Title: "DOSA COUNTER", Time: "8:00 – 11:00 AM", Price: 70},
		},
	},
	{
		Name: SectionAfternoon,
		Time: DefaultAfternoonDescriptor,
		Items: []MenuItem{
			{Title: "THALI LUNCH", Price: 65},
			{Title: "VEG COMBO", Price: 75},
			{Title: "NON VEG COMBO", Price: 85},
			{Title: "SALAD BAR", Price: 50},
		},
	},
	{
		Name: SectionEvening,
		Time: "5:00 – 7:30 PM",
		Items: []MenuItem{
			{Title: "PAID SNACKS", Time: "5:00 – 6:00 PM", Price: 40},
			{Title: "LTTS SNACKS", Time: "7:00 – 7:30 PM", Price: 0},
		},
	},
	{
		Name: SectionNight,
		Time: "8:15 – 9:00 PM",
		Items: []MenuItem{
			{Title: "THALI DINNER", Time: "8:15 – 9:00 PM", Price: 65},
			{Title: "NON VEG COMBO", Time: "8:15 – 9:00 PM", Price: 85},
		},
	},
}

// Schedule returns a copy of the daily schedule with portion keys assigned
func Schedule() []MenuSection {
	sections := make([]MenuSection, len(scheduleTemplate))
	for i, tmpl := range scheduleTemplate {
		items := make([]MenuItem, len(tmpl.Items))
		for j, item := range tmpl.Items {
			item.PortionKey = PortionKeyFor(item.Title, tmpl.Name)
			items[j] = item
		}
		sections[i] = MenuSection{Name: tmpl.Name, Time: tmpl.Time, Items: items}
	}
	return sections
}

// FindSection returns the section with the given name
func FindSection(name string) (*MenuSection, bool) {
	for _, section := range Schedule() {
		if section.Name == name {
			s := section
			return &s, true
		}
	}
	return nil, false
}
