package ticketing

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/fenrir/pkg/dataaccess"
	"golang.org/x/time/rate"
)

const (
	// deleteGraceDelay is how long a closed ticket channel lingers so the
	// closure acknowledgment stays visible before deletion.
	deleteGraceDelay = 5 * time.Second

	// createRateInterval and createRateBurst bound how quickly a single user can
	// open tickets.
	createRateInterval = 30 * time.Second
	createRateBurst    = 2
)

// Service is the ticketing core: the interaction router, ticket state machine,
// category registry, setup wizard and transcript capture, constructed with
// explicit dependencies.
type Service struct {
	// l is the logger.
	l *slog.Logger

	// s is the platform client capability.
	s Session

	// botID is the bot's own user ID, granted access on every ticket channel.
	botID string

	// tickets is the ticket store.
	tickets dataaccess.TicketDal

	// guilds is the guild configuration store.
	guilds dataaccess.GuildConfigDal

	// categories is the ticket category store.
	categories dataaccess.CategoryDal

	// bans is the ticket ban store.
	bans dataaccess.BanDal

	// deleteGrace is the delay before a closed ticket channel is deleted.
	deleteGrace time.Duration

	// limiters are the per-user ticket creation limiters.
	limitersMtx sync.Mutex
	limiters    map[string]*rate.Limiter
}

// NewService creates the ticketing core.
func NewService(
	l *slog.Logger,
	s Session,
	botID string,
	tickets dataaccess.TicketDal,
	guilds dataaccess.GuildConfigDal,
	categories dataaccess.CategoryDal,
	bans dataaccess.BanDal,
) *Service {
	return &Service{
		l:           l,
		s:           s,
		botID:       botID,
		tickets:     tickets,
		guilds:      guilds,
		categories:  categories,
		bans:        bans,
		deleteGrace: deleteGraceDelay,
		limiters:    make(map[string]*rate.Limiter),
	}
}

// limiterFor returns the creation limiter of a user, creating it on first use.
func (s *Service) limiterFor(userID string) *rate.Limiter {
	s.limitersMtx.Lock()
	defer s.limitersMtx.Unlock()

	l, ok := s.limiters[userID]
	if !ok {
		l = rate.NewLimiter(rate.Every(createRateInterval), createRateBurst)
		s.limiters[userID] = l
	}
	return l
}

// interactionUser returns the acting user of an interaction, regardless of
// whether it arrived from a guild or a direct message.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// hasRole reports whether the member holds the given role.
func hasRole(member *discordgo.Member, roleID string) bool {
	if member == nil || roleID == "" {
		return false
	}
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// isAdmin reports whether the member holds the administrator permission.
func isAdmin(member *discordgo.Member) bool {
	return member != nil && member.Permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator
}

// isStaff reports whether the member may manage tickets: either holding the
// configured support role or the administrator permission.
func isStaff(member *discordgo.Member, supportRoleID string) bool {
	return isAdmin(member) || hasRole(member, supportRoleID)
}
