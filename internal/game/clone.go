package game

// Clone returns a deep copy of the snapshot. Engine commands operate on a
// clone so a caller's snapshot is never mutated through shared references.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	out := &GameState{
		UserPlayerID:       s.UserPlayerID,
		League:             s.League,
		Window:             s.Window,
		Log:                append([]string(nil), s.Log...),
		InternationalWeeks: append([]int(nil), s.InternationalWeeks...),
		PlayerCreated:      s.PlayerCreated,
	}

	for _, t := range s.Teams {
		out.Teams = append(out.Teams, t.clone())
	}
	for _, p := range s.FreeAgents {
		out.FreeAgents = append(out.FreeAgents, p.clone())
	}
	for _, o := range s.Offers {
		c := *o
		out.Offers = append(out.Offers, &c)
	}
	for _, i := range s.Interactions {
		out.Interactions = append(out.Interactions, i.clone())
	}
	for _, nt := range s.NationalTeams {
		c := *nt
		c.Squad = append([]string(nil), nt.Squad...)
		out.NationalTeams = append(out.NationalTeams, &c)
	}
	if s.UpcomingInternational != nil {
		c := *s.UpcomingInternational
		out.UpcomingInternational = &c
	}
	return out
}

func (t *Team) clone() *Team {
	c := *t
	c.UsedKits = append([]int(nil), t.UsedKits...)
	c.Players = nil
	for _, p := range t.Players {
		c.Players = append(c.Players, p.clone())
	}
	return &c
}

func (p *Player) clone() *Player {
	c := *p
	c.ClubHistory = append([]ClubHistoryEntry(nil), p.ClubHistory...)
	c.Awards = append([]Award(nil), p.Awards...)
	c.Traits = append([]TraitID(nil), p.Traits...)
	c.Career.LeagueTitles = append([]TitleRecord(nil), p.Career.LeagueTitles...)
	c.Career.Promotions = append([]PromotionRecord(nil), p.Career.Promotions...)
	if p.LastMatch != nil {
		lm := *p.LastMatch
		c.LastMatch = &lm
	}
	if p.Injury != nil {
		inj := *p.Injury
		c.Injury = &inj
	}
	return &c
}

func (i *Interaction) clone() *Interaction {
	c := *i
	c.Options = nil
	for _, opt := range i.Options {
		o := opt
		o.Effects = append([]InteractionEffect(nil), opt.Effects...)
		c.Options = append(c.Options, o)
	}
	return &c
}
