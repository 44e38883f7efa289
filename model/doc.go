// Package model defines the records built from wiki infoboxes.
//
// A [Monster] or [Item] is a flat set of independently nullable fields plus a
// nested stats object. Integer, date and text fields are pointers, so an
// absent wiki key serializes as null. Boolean flags are plain bools: the
// cleaning rules map both "no" and "unknown" to false.
//
// Field declaration order is the serialization order:
//
//	{
//	    "id": 2,
//	    "name": "Goblin",
//	    "wiki_name": "Goblin - Level 2",
//	    ...
//	    "stats": {
//	        "attack_level": 1,
//	        ...
//	    }
//	}
//
// Records are built once and exported once. [Record.Validate] runs at the
// export boundary.
package model
