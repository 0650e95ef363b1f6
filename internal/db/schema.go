package db

// SchemaSQL contains the database schema initialization SQL.
const SchemaSQL = `
    -- ==========================================================================
    -- RESTAURANT TABLES
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS restaurant SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON restaurant TYPE string;
    DEFINE FIELD IF NOT EXISTS phone ON restaurant TYPE string;
    DEFINE FIELD IF NOT EXISTS email ON restaurant TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS address ON restaurant TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS city ON restaurant TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS state ON restaurant TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS website ON restaurant TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS active ON restaurant TYPE bool DEFAULT true;
    DEFINE FIELD IF NOT EXISTS created ON restaurant TYPE datetime DEFAULT time::now();

    DEFINE TABLE IF NOT EXISTS business_hour SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS restaurant ON business_hour TYPE record<restaurant>;
    -- Lowercase weekday name ("monday" .. "sunday")
    DEFINE FIELD IF NOT EXISTS day ON business_hour TYPE string;
    -- Display strings ready to be spoken ("09:00 AM")
    DEFINE FIELD IF NOT EXISTS opens ON business_hour TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS closes ON business_hour TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS closed_all_day ON business_hour TYPE bool DEFAULT false;
    DEFINE INDEX IF NOT EXISTS business_hour_day ON business_hour FIELDS restaurant, day UNIQUE;

    DEFINE TABLE IF NOT EXISTS menu_category SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS restaurant ON menu_category TYPE record<restaurant>;
    DEFINE FIELD IF NOT EXISTS name ON menu_category TYPE string;
    DEFINE FIELD IF NOT EXISTS description ON menu_category TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS active ON menu_category TYPE bool DEFAULT true;
    DEFINE INDEX IF NOT EXISTS menu_category_restaurant ON menu_category FIELDS restaurant;

    DEFINE TABLE IF NOT EXISTS menu_item SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS category ON menu_item TYPE record<menu_category>;
    DEFINE FIELD IF NOT EXISTS name ON menu_item TYPE string;
    DEFINE FIELD IF NOT EXISTS description ON menu_item TYPE option<string>;
    -- Price <= 0 means the price is not announced to callers
    DEFINE FIELD IF NOT EXISTS price ON menu_item TYPE float DEFAULT 0.0;
    DEFINE FIELD IF NOT EXISTS available ON menu_item TYPE bool DEFAULT true;
    DEFINE FIELD IF NOT EXISTS display_order ON menu_item TYPE int DEFAULT 0;
    DEFINE INDEX IF NOT EXISTS menu_item_category ON menu_item FIELDS category;

    -- ==========================================================================
    -- KNOWLEDGE BASE TABLES
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS faq SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS question ON faq TYPE string;
    DEFINE FIELD IF NOT EXISTS answer ON faq TYPE string;
    DEFINE FIELD IF NOT EXISTS category ON faq TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS keywords ON faq TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS active ON faq TYPE bool DEFAULT true;

    DEFINE TABLE IF NOT EXISTS pricing_plan SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON pricing_plan TYPE string;
    DEFINE FIELD IF NOT EXISTS plan_type ON pricing_plan TYPE string;
    -- Display string ("$99/month", "custom pricing"), not an amount
    DEFINE FIELD IF NOT EXISTS price ON pricing_plan TYPE string;
    DEFINE FIELD IF NOT EXISTS description ON pricing_plan TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS features ON pricing_plan TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS call_limit ON pricing_plan TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS display_order ON pricing_plan TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS active ON pricing_plan TYPE bool DEFAULT true;

    DEFINE TABLE IF NOT EXISTS knowledge_item SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS title ON knowledge_item TYPE string;
    DEFINE FIELD IF NOT EXISTS content ON knowledge_item TYPE string;
    DEFINE FIELD IF NOT EXISTS category ON knowledge_item TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS keywords ON knowledge_item TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS confidence_boost ON knowledge_item TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS display_order ON knowledge_item TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS active ON knowledge_item TYPE bool DEFAULT true;

    DEFINE TABLE IF NOT EXISTS service_feature SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON service_feature TYPE string;
    DEFINE FIELD IF NOT EXISTS description ON service_feature TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS category ON service_feature TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS display_order ON service_feature TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS active ON service_feature TYPE bool DEFAULT true;

    DEFINE TABLE IF NOT EXISTS success_story SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS restaurant_name ON success_story TYPE string;
    DEFINE FIELD IF NOT EXISTS restaurant_type ON success_story TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS story ON success_story TYPE string;
    DEFINE FIELD IF NOT EXISTS metrics ON success_story TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS featured ON success_story TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS display_order ON success_story TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS active ON success_story TYPE bool DEFAULT true;

    -- ==========================================================================
    -- CALL SESSION TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS session SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS step ON session TYPE string;
    DEFINE FIELD IF NOT EXISTS restaurant_id ON session TYPE string;
    DEFINE FIELD IF NOT EXISTS selected_menu_id ON session TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS selected_items ON session TYPE array<object> DEFAULT [];
    -- Note: Must REMOVE then DEFINE to ensure FLEXIBLE is set (IF NOT EXISTS won't update existing field)
    REMOVE FIELD IF EXISTS selected_items.* ON session;
    DEFINE FIELD selected_items.* ON session TYPE object FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS customer_info ON session TYPE option<object> FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS last_input ON session TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS last_prompt ON session TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS last_step ON session TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS created ON session TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS updated ON session TYPE datetime DEFAULT time::now();

    -- ==========================================================================
    -- ORDER TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS food_order SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS order_ref ON food_order TYPE string;
    DEFINE FIELD IF NOT EXISTS restaurant_id ON food_order TYPE string;
    DEFINE FIELD IF NOT EXISTS restaurant_name ON food_order TYPE string;
    DEFINE FIELD IF NOT EXISTS category_id ON food_order TYPE string;
    DEFINE FIELD IF NOT EXISTS category_name ON food_order TYPE string;
    DEFINE FIELD IF NOT EXISTS items ON food_order TYPE array<object> DEFAULT [];
    REMOVE FIELD IF EXISTS items.* ON food_order;
    DEFINE FIELD items.* ON food_order TYPE object FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS customer_phone ON food_order TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS notes ON food_order TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS placed_at ON food_order TYPE datetime DEFAULT time::now();
    DEFINE INDEX IF NOT EXISTS food_order_ref ON food_order FIELDS order_ref UNIQUE;
`
