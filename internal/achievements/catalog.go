package achievements

// Type identifies an achievement in the catalog and in stored grants.
type Type string

const (
	FirstBookmark     Type = "first_bookmark"
	BookmarkCollector Type = "bookmark_collector"
	BookmarkMaster    Type = "bookmark_master"
	ActiveLearner     Type = "active_learner"
	PowerUser         Type = "power_user"
	Contributor       Type = "contributor"
	SuperContributor  Type = "super_contributor"
	GoalSetter        Type = "goal_setter"
	GoalAchiever      Type = "goal_achiever"
	GoalMaster        Type = "goal_master"
	ProfileComplete   Type = "profile_complete"
	ForumContributor  Type = "forum_contributor"
)

// Domain names the count an achievement is evaluated against.
type Domain string

const (
	DomainBookmarks      Domain = "bookmarks"
	DomainDownloads      Domain = "downloads"
	DomainUploads        Domain = "uploads"
	DomainGoalsCreated   Domain = "goals_created"
	DomainGoalsCompleted Domain = "goals_completed"
	DomainProfile        Domain = "profile"
	DomainForum          Domain = "forum"
)

// Definition is the static display and rule data of one achievement.
type Definition struct {
	Type        Type   `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Domain      Domain `json:"-"`
	Threshold   int64  `json:"-"`
}

var definitions = []Definition{
	{Type: FirstBookmark, Name: "First Bookmark", Description: "Bookmarked your first resource", Icon: "🔖", Domain: DomainBookmarks, Threshold: 1},
	{Type: BookmarkCollector, Name: "Bookmark Collector", Description: "Bookmarked 10 resources", Icon: "📚", Domain: DomainBookmarks, Threshold: 10},
	{Type: BookmarkMaster, Name: "Bookmark Master", Description: "Bookmarked 25 resources", Icon: "🏆", Domain: DomainBookmarks, Threshold: 25},
	{Type: ActiveLearner, Name: "Active Learner", Description: "Downloaded 10 resources", Icon: "📥", Domain: DomainDownloads, Threshold: 10},
	{Type: PowerUser, Name: "Power User", Description: "Downloaded 50 resources", Icon: "⚡", Domain: DomainDownloads, Threshold: 50},
	{Type: Contributor, Name: "Contributor", Description: "Uploaded your first resource", Icon: "📤", Domain: DomainUploads, Threshold: 1},
	{Type: SuperContributor, Name: "Super Contributor", Description: "Uploaded 5 resources", Icon: "🌟", Domain: DomainUploads, Threshold: 5},
	{Type: GoalSetter, Name: "Goal Setter", Description: "Created your first learning goal", Icon: "🎯", Domain: DomainGoalsCreated, Threshold: 1},
	{Type: GoalAchiever, Name: "Goal Achiever", Description: "Completed your first learning goal", Icon: "✅", Domain: DomainGoalsCompleted, Threshold: 1},
	{Type: GoalMaster, Name: "Goal Master", Description: "Completed 5 learning goals", Icon: "🥇", Domain: DomainGoalsCompleted, Threshold: 5},
	{Type: ProfileComplete, Name: "Profile Complete", Description: "Added a profile photo", Icon: "📸", Domain: DomainProfile, Threshold: 1},
	{Type: ForumContributor, Name: "Forum Contributor", Description: "Started your first forum discussion", Icon: "💬", Domain: DomainForum, Threshold: 1},
}

var catalog = func() map[Type]Definition {
	m := make(map[Type]Definition, len(definitions))
	for _, d := range definitions {
		m[d.Type] = d
	}
	return m
}()

// Catalog returns every definition in display order.
func Catalog() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup finds a definition by type.
func Lookup(t Type) (Definition, bool) {
	d, ok := catalog[t]
	return d, ok
}

// ByDomain returns the definitions evaluated against a domain, lowest threshold first.
func ByDomain(domain Domain) []Definition {
	var out []Definition
	for _, d := range definitions {
		if d.Domain == domain {
			out = append(out, d)
		}
	}
	return out
}
