package alerts

// ContainerID is the id of the page element that displays the alerts.
const ContainerID = "nema-alerts-feed"

// Target is an output surface whose whole content is replaced on every
// state transition of a load.
type Target interface {
	Replace(fragment string)
}

// Container is an in-memory Target.
type Container struct {
	id      string
	content string
}

func NewContainer(id string) *Container {
	return &Container{id: id}
}

func (c *Container) ID() string {
	return c.id
}

func (c *Container) Replace(fragment string) {
	c.content = fragment
}

func (c *Container) Content() string {
	return c.content
}
