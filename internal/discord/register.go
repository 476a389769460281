package discord

// RegisterAll wires every command and component handler into the registry.
func RegisterAll(r *CommandRegistry) {
	r.Register(ClaimCommand())
	r.Register(HaremCommand())
	r.Register(SortsCommand())
	r.Register(FilterCommand())
	r.Register(FavCommand())
	r.Register(FindCommand())
	r.Register(SearchCommand())
	r.Register(RarityCommand())
	r.Register(TopCommand())
	r.Register(TopGroupsCommand())
	r.Register(TradeCommand())
	r.Register(GiftCommand())

	r.Register(SummonCommand())
	r.Register(UploadCommand())
	r.Register(UpdateCommand())
	r.Register(DeleteCommand())
	r.Register(GiveCommand())
	r.Register(LockSpawnCommand())
	r.Register(UnlockSpawnCommand())
	r.Register(LockedSpawnsCommand())
	r.Register(ChangeFrequencyCommand())

	r.RegisterComponent(HaremPageComponent())
	r.RegisterComponent(TradeComponent())
}
