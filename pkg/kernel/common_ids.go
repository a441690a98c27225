package kernel

// UserPoolID scopes every identity-backend call to one user pool.
type UserPoolID string

func NewUserPoolID(id string) UserPoolID { return UserPoolID(id) }
func (p UserPoolID) String() string      { return string(p) }
func (p UserPoolID) IsEmpty() bool       { return string(p) == "" }

// Username is the stable identifier of an account inside a pool.
type Username string

func NewUsername(name string) Username { return Username(name) }
func (u Username) String() string      { return string(u) }
func (u Username) IsEmpty() bool       { return string(u) == "" }
