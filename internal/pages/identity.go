package pages

// Identity is who the storefront believes is browsing
type Identity struct {
	LoggedIn bool
	Username string
}

// Guest is the anonymous identity
func Guest() Identity {
	return Identity{}
}

// LoggedInAs is the identity of a signed-in user
func LoggedInAs(username string) Identity {
	return Identity{LoggedIn: true, Username: username}
}

func (i Identity) String() string {
	if !i.LoggedIn {
		return "guest"
	}
	if i.Username == "" {
		return "user"
	}
	return "user:" + i.Username
}
