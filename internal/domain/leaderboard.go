package domain

// GroupEntry counts one user's claims inside one group chat. Maintained
// independently of inventories and may drift from true inventory size.
type GroupEntry struct {
	UserID      string `bson:"user_id" json:"user_id"`
	GroupID     string `bson:"group_id" json:"group_id"`
	Username    string `bson:"username" json:"username"`
	DisplayName string `bson:"display_name" json:"display_name"`
	Count       int    `bson:"count" json:"count"`
}

// GlobalEntry counts all claims that happened inside one group chat.
type GlobalEntry struct {
	GroupID   string `bson:"group_id" json:"group_id"`
	GroupName string `bson:"group_name" json:"group_name"`
	Count     int    `bson:"count" json:"count"`
}
