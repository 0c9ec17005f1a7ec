package server

import "saferoom/server/logging"

func (m *monsterState) logRef() logging.EntityRef {
	return logging.EntityRef{ID: m.ID, Kind: logging.EntityKindMonster}
}

func (w *World) worldRef() logging.EntityRef {
	return logging.EntityRef{ID: "world", Kind: logging.EntityKindWorld}
}

func (w *World) targetRef(p *playerState) logging.EntityRef {
	if p == nil {
		return logging.EntityRef{Kind: logging.EntityKindUnknown}
	}
	return logging.EntityRef{ID: p.ID, Kind: logging.EntityKindPlayer}
}

func propRef(id string) logging.EntityRef {
	return logging.EntityRef{ID: id, Kind: logging.EntityKindProp}
}
