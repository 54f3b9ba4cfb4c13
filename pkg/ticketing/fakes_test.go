package ticketing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/fenrir/pkg/dataaccess"
	"github.com/Jacobbrewer1/fenrir/pkg/entities"
)

// fakeSession is an in-memory Session recording every side effect.
type fakeSession struct {
	mtx sync.Mutex

	// channels are the live channels by ID.
	channels map[string]*discordgo.Channel

	// deleted are the IDs of deleted channels, in deletion order.
	deleted []string

	// sent are the messages sent per channel, in send order.
	sent map[string][]*discordgo.MessageSend

	// history is the message history served per channel, new-old.
	history map[string][]*discordgo.Message

	// responses are the interaction responses, in order.
	responses []*discordgo.InteractionResponse

	// failChannelCreate makes GuildChannelCreateComplex fail.
	failChannelCreate bool

	nextChannel int
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		channels: make(map[string]*discordgo.Channel),
		sent:     make(map[string][]*discordgo.MessageSend),
		history:  make(map[string][]*discordgo.Message),
	}
}

func (f *fakeSession) addChannel(id, name string, channelType discordgo.ChannelType) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.channels[id] = &discordgo.Channel{
		ID:   id,
		Name: name,
		Type: channelType,
	}
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.sent[channelID] = append(f.sent[channelID], data)
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", len(f.sent[channelID])), ChannelID: channelID}, nil
}

func (f *fakeSession) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	msgs := f.history[channelID]
	if beforeID != "" {
		// Pagination is not exercised by these tests.
		return nil, nil
	}
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (f *fakeSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if f.failChannelCreate {
		return nil, fmt.Errorf("channel create refused")
	}
	f.nextChannel++
	c := &discordgo.Channel{
		ID:                   fmt.Sprintf("chan-%d", f.nextChannel),
		GuildID:              guildID,
		Name:                 data.Name,
		Type:                 data.Type,
		PermissionOverwrites: data.PermissionOverwrites,
	}
	f.channels[c.ID] = c
	return c, nil
}

func (f *fakeSession) ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	c, ok := f.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("unknown channel %s", channelID)
	}
	delete(f.channels, channelID)
	f.deleted = append(f.deleted, channelID)
	return c, nil
}

func (f *fakeSession) ChannelPermissionSet(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64, options ...discordgo.RequestOption) error {
	return nil
}

func (f *fakeSession) ChannelPermissionDelete(channelID, targetID string, options ...discordgo.RequestOption) error {
	return nil
}

func (f *fakeSession) GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	channels := make([]*discordgo.Channel, 0, len(f.channels))
	for _, c := range f.channels {
		channels = append(channels, c)
	}
	return channels, nil
}

func (f *fakeSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSession) channelExists(id string) bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	_, ok := f.channels[id]
	return ok
}

func (f *fakeSession) channel(id string) *discordgo.Channel {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.channels[id]
}

func (f *fakeSession) deletedChannels() []string {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return append([]string(nil), f.deleted...)
}

func (f *fakeSession) sentTo(channelID string) []*discordgo.MessageSend {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return append([]*discordgo.MessageSend(nil), f.sent[channelID]...)
}

func (f *fakeSession) lastResponse() *discordgo.InteractionResponse {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if len(f.responses) == 0 {
		return nil
	}
	return f.responses[len(f.responses)-1]
}

// fakeStore is an in-memory store implementing every DAL interface with the
// same conditional update semantics as the Mongo layer.
type fakeStore struct {
	mtx sync.Mutex

	tickets    map[string]*entities.Ticket
	configs    map[string]*entities.GuildConfig
	categories []*entities.TicketCategory
	bans       map[string]*entities.BanRecord

	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tickets: make(map[string]*entities.Ticket),
		configs: make(map[string]*entities.GuildConfig),
		bans:    make(map[string]*entities.BanRecord),
	}
}

func (f *fakeStore) CreateTicket(ctx context.Context, ticket *entities.Ticket) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if ticket.ID == "" {
		f.nextID++
		ticket.ID = fmt.Sprintf("ticket-%d", f.nextID)
	}
	cp := *ticket
	f.tickets[ticket.ID] = &cp
	return nil
}

func (f *fakeStore) GetTicketByChannel(ctx context.Context, guildID, channelID string) (*entities.Ticket, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	for _, t := range f.tickets {
		if t.GuildID == guildID && t.ChannelID == channelID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ConditionalUpdateStatus(ctx context.Context, id string, from []entities.TicketStatus, to entities.TicketStatus, fields *dataaccess.CloseFields) (bool, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	t, ok := f.tickets[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, s := range from {
		if t.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	t.Status = to
	if fields != nil {
		t.ClosedBy = fields.ClosedBy
		t.ClosedAt = fields.ClosedAt
		t.Transcript = fields.Transcript
	}
	return true, nil
}

func (f *fakeStore) ConditionalSetClaimant(ctx context.Context, id, userID string) (bool, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	t, ok := f.tickets[id]
	if !ok || t.ClaimedBy != "" {
		return false, nil
	}
	t.ClaimedBy = userID
	return true, nil
}

func (f *fakeStore) CountOpenTickets(ctx context.Context, guildID, openerID string) (int64, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	var n int64
	for _, t := range f.tickets {
		if t.GuildID == guildID && t.OpenerID == openerID && t.Status != entities.TicketStatusClosed {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) GetGuildConfig(ctx context.Context, guildID string) (*entities.GuildConfig, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	cfg, ok := f.configs[guildID]
	if !ok {
		return nil, nil
	}
	cp := *cfg
	return &cp, nil
}

func (f *fakeStore) UpsertGuildConfig(ctx context.Context, cfg *entities.GuildConfig) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	cp := *cfg
	f.configs[cfg.ID] = &cp
	return nil
}

func (f *fakeStore) CreateCategory(ctx context.Context, category *entities.TicketCategory) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if category.ID == "" {
		f.nextID++
		category.ID = fmt.Sprintf("cat-%d", f.nextID)
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	cp := *category
	f.categories = append(f.categories, &cp)
	return nil
}

func (f *fakeStore) GetCategory(ctx context.Context, id string) (*entities.TicketCategory, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	for _, c := range f.categories {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListCategories(ctx context.Context, configID string) ([]*entities.TicketCategory, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	var out []*entities.TicketCategory
	for _, c := range f.categories {
		if c.ConfigID == configID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) GetBanRecord(ctx context.Context, userID string) (*entities.BanRecord, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	rec, ok := f.bans[userID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStore) UpsertBanRecord(ctx context.Context, record *entities.BanRecord) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	cp := *record
	f.bans[record.UserID] = &cp
	return nil
}

func (f *fakeStore) ticket(id string) *entities.Ticket {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	t, ok := f.tickets[id]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}

func (f *fakeStore) ticketCount() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return len(f.tickets)
}

// newTestService wires a Service against the fakes with a short deletion grace
// so tests can observe the deferred cleanup.
func newTestService() (*Service, *fakeSession, *fakeStore) {
	session := newFakeSession()
	store := newFakeStore()

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(l, session, "bot-user", store, store, store, store)
	svc.deleteGrace = 50 * time.Millisecond
	return svc, session, store
}

// Interaction builders.

func testUser(id string) *discordgo.User {
	return &discordgo.User{
		ID:       id,
		Username: id,
	}
}

func testMember(user *discordgo.User, permissions int64, roles ...string) *discordgo.Member {
	return &discordgo.Member{
		User:        user,
		Roles:       roles,
		Permissions: permissions,
	}
}

func buttonInteraction(guildID, channelID, customID string, member *discordgo.Member) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionMessageComponent,
			GuildID:   guildID,
			ChannelID: channelID,
			Member:    member,
			Data: discordgo.MessageComponentInteractionData{
				CustomID:      customID,
				ComponentType: discordgo.ButtonComponent,
			},
		},
	}
}

func selectInteraction(guildID, channelID, customID string, member *discordgo.Member, values ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionMessageComponent,
			GuildID:   guildID,
			ChannelID: channelID,
			Member:    member,
			Data: discordgo.MessageComponentInteractionData{
				CustomID:      customID,
				ComponentType: discordgo.SelectMenuComponent,
				Values:        values,
			},
		},
	}
}

func modalInteraction(guildID, channelID, customID string, member *discordgo.Member, fields map[string]string, order ...string) *discordgo.InteractionCreate {
	rows := make([]discordgo.MessageComponent, 0, len(order))
	for _, id := range order {
		rows = append(rows, &discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				&discordgo.TextInput{
					CustomID: id,
					Value:    fields[id],
				},
			},
		})
	}
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionModalSubmit,
			GuildID:   guildID,
			ChannelID: channelID,
			Member:    member,
			Data: discordgo.ModalSubmitInteractionData{
				CustomID:   customID,
				Components: rows,
			},
		},
	}
}

func commandInteraction(guildID, channelID, name string, member *discordgo.Member, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   guildID,
			ChannelID: channelID,
			Member:    member,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}
