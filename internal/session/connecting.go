package session

const banner = "" +
	"=====================================\n" +
	"    Welcome to Tower Keep!\n" +
	"=====================================\n"

// connectingState only ever sends the banner; it accepts no input and the
// manager advances it straight to LOGIN.
type connectingState struct{}

func (connectingState) enter(m *Manager, c *ConnectedClient) {
	c.Send(banner)
}

func (connectingState) handle(m *Manager, c *ConnectedClient, line string) State {
	return StateLogin
}

func (connectingState) exit(m *Manager, c *ConnectedClient) {}
